package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientService is the client directory the order engine reads from.
// Clients are deactivated, never hard-deleted.
type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*Client, error)
	Update(ctx context.Context, clientID int, in ClientInput) (*Client, error)
	Get(ctx context.Context, clientID int) (*Client, error)
	// List returns active clients ordered by customer name.
	List(ctx context.Context) ([]Client, error)
	// Deactivate excludes the client from future selection. Snapshots already
	// embedded in orders are unaffected. Repeating is a no-op success.
	Deactivate(ctx context.Context, clientID int) error
}

type clientService struct {
	pool *pgxpool.Pool
}

func NewClientService(pool *pgxpool.Pool) ClientService {
	return &clientService{pool: pool}
}

const clientColumns = "id, customer_name, address1, address2, address3, state, post_code, is_active, created_at"

func scanClient(row pgx.Row, c *Client) error {
	return row.Scan(&c.ID, &c.CustomerName, &c.Address1, &c.Address2, &c.Address3,
		&c.State, &c.PostCode, &c.IsActive, &c.CreatedAt)
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*Client, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	var c Client
	err := scanClient(s.pool.QueryRow(ctx, `
		INSERT INTO clients (customer_name, address1, address2, address3, state, post_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+clientColumns,
		in.CustomerName, in.Address1, in.Address2, in.Address3, in.State, in.PostCode), &c)
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to create client: %w", err))
	}
	return &c, nil
}

func (s *clientService) Update(ctx context.Context, clientID int, in ClientInput) (*Client, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	var c Client
	err := scanClient(s.pool.QueryRow(ctx, `
		UPDATE clients
		SET customer_name = $1, address1 = $2, address2 = $3, address3 = $4, state = $5, post_code = $6
		WHERE id = $7
		RETURNING `+clientColumns,
		in.CustomerName, in.Address1, in.Address2, in.Address3, in.State, in.PostCode, clientID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("client %d not found", clientID)
		}
		return nil, storageError(fmt.Errorf("failed to update client %d: %w", clientID, err))
	}
	return &c, nil
}

func (s *clientService) Get(ctx context.Context, clientID int) (*Client, error) {
	var c Client
	err := scanClient(s.pool.QueryRow(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = $1", clientID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("client %d not found", clientID)
		}
		return nil, storageError(fmt.Errorf("failed to fetch client %d: %w", clientID, err))
	}
	return &c, nil
}

func (s *clientService) List(ctx context.Context) ([]Client, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE is_active ORDER BY customer_name, id")
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to query clients: %w", err))
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := scanClient(rows, &c); err != nil {
			return nil, storageError(fmt.Errorf("failed to scan client: %w", err))
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("failed to read clients: %w", err))
	}
	return clients, nil
}

func (s *clientService) Deactivate(ctx context.Context, clientID int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE clients SET is_active = false WHERE id = $1", clientID)
	if err != nil {
		return storageError(fmt.Errorf("failed to deactivate client %d: %w", clientID, err))
	}
	if tag.RowsAffected() == 0 {
		return notFoundf("client %d not found", clientID)
	}
	return nil
}
