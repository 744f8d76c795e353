package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService owns the order aggregate: every mutation spans the header and
// the full line set in one transaction, so a partially written order is never
// observable.
type OrderService interface {
	// Create validates references and uniqueness, snapshots the client and
	// each item, computes amounts and totals, and persists the whole
	// aggregate atomically. Returns the materialized order.
	Create(ctx context.Context, in OrderInput) (*SalesOrder, error)
	// Replace is a full substitution of the line set, never an incremental
	// edit: the header is updated in place, all existing lines are deleted,
	// and the new lines are re-snapshotted and renumbered 1..N.
	Replace(ctx context.Context, orderID int, in OrderInput) (*SalesOrder, error)
	// SoftDelete deactivates the order, freeing its invoice number for reuse.
	// Deleting an already-inactive order is a no-op success.
	SoftDelete(ctx context.Context, orderID int) error
	// Get returns the order, active or not, lines ordered by line number.
	Get(ctx context.Context, orderID int) (*SalesOrder, error)
	// List returns active orders, most recently created first.
	List(ctx context.Context) ([]SalesOrder, error)
}

type orderService struct {
	pool *pgxpool.Pool
}

func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// single-row helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxRowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx (for Query).
type pgxRowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// clientSnapshot is the denormalized billing detail copied onto the header.
type clientSnapshot struct {
	customerName string
	address1     string
	address2     string
	address3     string
	state        string
	postCode     string
}

func (s *orderService) Create(ctx context.Context, in OrderInput) (*SalesOrder, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	snap, err := resolveClient(ctx, tx, in.ClientID)
	if err != nil {
		return nil, err
	}

	taken, err := invoiceNoTaken(ctx, tx, in.InvoiceNo, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
	}

	lines, err := buildLines(ctx, tx, in.Lines)
	if err != nil {
		return nil, err
	}
	totalExcl, totalTax, totalIncl := SumLineAmounts(lines)

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO sales_orders (invoice_no, invoice_date, reference_no, client_id,
			customer_name, address1, address2, address3, state, post_code,
			total_excl_amount, total_tax_amount, total_incl_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, in.InvoiceNo, in.InvoiceDate, in.ReferenceNo, in.ClientID,
		snap.customerName, snap.address1, snap.address2, snap.address3, snap.state, snap.postCode,
		totalExcl, totalTax, totalIncl).Scan(&orderID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
		}
		return nil, storageError(fmt.Errorf("failed to insert order header: %w", err))
	}

	if err := insertLines(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
		}
		return nil, storageError(fmt.Errorf("failed to commit order creation: %w", err))
	}

	return s.Get(ctx, orderID)
}

func (s *orderService) Replace(ctx context.Context, orderID int, in OrderInput) (*SalesOrder, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	// Lock the header row for the duration of the swap. Soft-deleted orders
	// are terminal and refuse further updates.
	var active bool
	err = tx.QueryRow(ctx,
		"SELECT is_active FROM sales_orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("order %d not found", orderID)
		}
		return nil, storageError(fmt.Errorf("failed to fetch order %d: %w", orderID, err))
	}
	if !active {
		return nil, notFoundf("order %d not found", orderID)
	}

	snap, err := resolveClient(ctx, tx, in.ClientID)
	if err != nil {
		return nil, err
	}

	taken, err := invoiceNoTaken(ctx, tx, in.InvoiceNo, orderID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
	}

	lines, err := buildLines(ctx, tx, in.Lines)
	if err != nil {
		return nil, err
	}
	totalExcl, totalTax, totalIncl := SumLineAmounts(lines)

	_, err = tx.Exec(ctx, `
		UPDATE sales_orders
		SET invoice_no = $1, invoice_date = $2, reference_no = $3, client_id = $4,
			customer_name = $5, address1 = $6, address2 = $7, address3 = $8,
			state = $9, post_code = $10,
			total_excl_amount = $11, total_tax_amount = $12, total_incl_amount = $13,
			modified_at = NOW()
		WHERE id = $14
	`, in.InvoiceNo, in.InvoiceDate, in.ReferenceNo, in.ClientID,
		snap.customerName, snap.address1, snap.address2, snap.address3, snap.state, snap.postCode,
		totalExcl, totalTax, totalIncl, orderID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
		}
		return nil, storageError(fmt.Errorf("failed to update order header: %w", err))
	}

	if _, err := tx.Exec(ctx, "DELETE FROM sales_order_lines WHERE order_id = $1", orderID); err != nil {
		return nil, storageError(fmt.Errorf("failed to delete existing lines: %w", err))
	}

	if err := insertLines(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("invoice number %s already exists", in.InvoiceNo)
		}
		return nil, storageError(fmt.Errorf("failed to commit order replacement: %w", err))
	}

	return s.Get(ctx, orderID)
}

func (s *orderService) SoftDelete(ctx context.Context, orderID int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE sales_orders SET is_active = false, modified_at = NOW() WHERE id = $1",
		orderID,
	)
	if err != nil {
		return storageError(fmt.Errorf("failed to soft-delete order %d: %w", orderID, err))
	}
	if tag.RowsAffected() == 0 {
		return notFoundf("order %d not found", orderID)
	}
	return nil
}

func (s *orderService) Get(ctx context.Context, orderID int) (*SalesOrder, error) {
	var o SalesOrder
	err := s.pool.QueryRow(ctx, `
		SELECT id, invoice_no, invoice_date::text, reference_no, client_id,
			customer_name, address1, address2, address3, state, post_code,
			total_excl_amount, total_tax_amount, total_incl_amount,
			is_active, created_at, modified_at
		FROM sales_orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.InvoiceNo, &o.InvoiceDate, &o.ReferenceNo, &o.ClientID,
		&o.CustomerName, &o.Address1, &o.Address2, &o.Address3, &o.State, &o.PostCode,
		&o.TotalExclAmount, &o.TotalTaxAmount, &o.TotalInclAmount,
		&o.IsActive, &o.CreatedAt, &o.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("order %d not found", orderID)
		}
		return nil, storageError(fmt.Errorf("failed to fetch order %d: %w", orderID, err))
	}

	lines, err := fetchOrderLines(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (s *orderService) List(ctx context.Context) ([]SalesOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_no, invoice_date::text, reference_no, client_id,
			customer_name, address1, address2, address3, state, post_code,
			total_excl_amount, total_tax_amount, total_incl_amount,
			is_active, created_at, modified_at
		FROM sales_orders
		WHERE is_active
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to query orders: %w", err))
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		var o SalesOrder
		if err := rows.Scan(
			&o.ID, &o.InvoiceNo, &o.InvoiceDate, &o.ReferenceNo, &o.ClientID,
			&o.CustomerName, &o.Address1, &o.Address2, &o.Address3, &o.State, &o.PostCode,
			&o.TotalExclAmount, &o.TotalTaxAmount, &o.TotalInclAmount,
			&o.IsActive, &o.CreatedAt, &o.ModifiedAt,
		); err != nil {
			return nil, storageError(fmt.Errorf("failed to scan order: %w", err))
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("failed to read orders: %w", err))
	}

	for i := range orders {
		lines, err := fetchOrderLines(ctx, s.pool, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

// resolveClient fetches the billing snapshot for the referenced client.
// Existence is the only requirement; historical orders may keep referencing a
// client that is later deactivated.
func resolveClient(ctx context.Context, q pgxQuerier, clientID int) (clientSnapshot, error) {
	var snap clientSnapshot
	err := q.QueryRow(ctx, `
		SELECT customer_name, address1, address2, address3, state, post_code
		FROM clients
		WHERE id = $1
	`, clientID).Scan(&snap.customerName, &snap.address1, &snap.address2, &snap.address3, &snap.state, &snap.postCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, referenceNotFoundf("client %d not found", clientID)
		}
		return snap, storageError(fmt.Errorf("failed to resolve client %d: %w", clientID, err))
	}
	return snap, nil
}

// invoiceNoTaken reports whether another active order already carries the
// invoice number. Run inside the write transaction; the partial unique index
// on sales_orders remains the authoritative guard against the
// check-then-insert race.
func invoiceNoTaken(ctx context.Context, q pgxQuerier, invoiceNo string, excludeOrderID int) (bool, error) {
	var taken bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sales_orders
			WHERE invoice_no = $1 AND is_active AND id <> $2
		)
	`, invoiceNo, excludeOrderID).Scan(&taken)
	if err != nil {
		return false, storageError(fmt.Errorf("failed to check invoice number %s: %w", invoiceNo, err))
	}
	return taken, nil
}

// buildLines resolves and snapshots each requested item, assigns line numbers
// from input position, and computes amounts. Any missing or inactive item
// fails the whole batch.
func buildLines(ctx context.Context, q pgxQuerier, inputs []LineInput) ([]SalesOrderLine, error) {
	lines := make([]SalesOrderLine, 0, len(inputs))
	for i, in := range inputs {
		var (
			code        string
			description string
			item        Item
		)
		err := q.QueryRow(ctx,
			"SELECT code, description, unit_price, is_active FROM items WHERE id = $1",
			in.ItemID,
		).Scan(&code, &description, &item.UnitPrice, &item.IsActive)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, referenceNotFoundf("item %d not found or inactive", in.ItemID)
			}
			return nil, storageError(fmt.Errorf("line %d: failed to resolve item %d: %w", i+1, in.ItemID, err))
		}
		if !item.IsActive {
			return nil, referenceNotFoundf("item %d not found or inactive", in.ItemID)
		}

		excl, tax, incl, err := CalculateLineAmounts(in.Quantity, item.UnitPrice, in.TaxRate)
		if err != nil {
			return nil, err
		}

		lines = append(lines, SalesOrderLine{
			LineNumber:  i + 1,
			ItemID:      in.ItemID,
			ItemCode:    code,
			Description: description,
			Note:        in.Note,
			Quantity:    in.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     in.TaxRate,
			ExclAmount:  excl,
			TaxAmount:   tax,
			InclAmount:  incl,
		})
	}
	return lines, nil
}

func insertLines(ctx context.Context, tx pgx.Tx, orderID int, lines []SalesOrderLine) error {
	for _, l := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales_order_lines (order_id, line_number, item_id, item_code,
				description, note, quantity, unit_price, tax_rate,
				excl_amount, tax_amount, incl_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, orderID, l.LineNumber, l.ItemID, l.ItemCode,
			l.Description, l.Note, l.Quantity, l.UnitPrice, l.TaxRate,
			l.ExclAmount, l.TaxAmount, l.InclAmount)
		if err != nil {
			return storageError(fmt.Errorf("failed to insert order line %d: %w", l.LineNumber, err))
		}
	}
	return nil
}

func fetchOrderLines(ctx context.Context, q pgxRowQuerier, orderID int) ([]SalesOrderLine, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, line_number, item_id, item_code, description, note,
			quantity, unit_price, tax_rate, excl_amount, tax_amount, incl_amount
		FROM sales_order_lines
		WHERE order_id = $1
		ORDER BY line_number
	`, orderID)
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to query order lines: %w", err))
	}
	defer rows.Close()

	var lines []SalesOrderLine
	for rows.Next() {
		var l SalesOrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.LineNumber, &l.ItemID, &l.ItemCode, &l.Description, &l.Note,
			&l.Quantity, &l.UnitPrice, &l.TaxRate, &l.ExclAmount, &l.TaxAmount, &l.InclAmount,
		); err != nil {
			return nil, storageError(fmt.Errorf("failed to scan order line: %w", err))
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("failed to read order lines: %w", err))
	}
	return lines, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
