package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemService is the item catalog the order engine snapshots from. Item codes
// are unique across all items regardless of the active flag, so a deactivated
// item's code cannot be reused.
type ItemService interface {
	Create(ctx context.Context, in ItemInput) (*Item, error)
	Update(ctx context.Context, itemID int, in ItemInput) (*Item, error)
	Get(ctx context.Context, itemID int) (*Item, error)
	// List returns active items ordered by code.
	List(ctx context.Context) ([]Item, error)
	// Deactivate excludes the item from new order lines. Existing line
	// snapshots are unaffected. Repeating is a no-op success.
	Deactivate(ctx context.Context, itemID int) error
}

type itemService struct {
	pool *pgxpool.Pool
}

func NewItemService(pool *pgxpool.Pool) ItemService {
	return &itemService{pool: pool}
}

const itemColumns = "id, code, description, unit_price, is_active, created_at"

func scanItem(row pgx.Row, it *Item) error {
	return row.Scan(&it.ID, &it.Code, &it.Description, &it.UnitPrice, &it.IsActive, &it.CreatedAt)
}

func (s *itemService) Create(ctx context.Context, in ItemInput) (*Item, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	var it Item
	err := scanItem(s.pool.QueryRow(ctx, `
		INSERT INTO items (code, description, unit_price)
		VALUES ($1, $2, $3)
		RETURNING `+itemColumns,
		in.Code, in.Description, in.UnitPrice), &it)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("item code %s already exists", in.Code)
		}
		return nil, storageError(fmt.Errorf("failed to create item: %w", err))
	}
	return &it, nil
}

func (s *itemService) Update(ctx context.Context, itemID int, in ItemInput) (*Item, error) {
	if violations := in.validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	var it Item
	err := scanItem(s.pool.QueryRow(ctx, `
		UPDATE items
		SET code = $1, description = $2, unit_price = $3
		WHERE id = $4
		RETURNING `+itemColumns,
		in.Code, in.Description, in.UnitPrice, itemID), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("item %d not found", itemID)
		}
		if isUniqueViolation(err) {
			return nil, duplicateKeyf("item code %s already exists", in.Code)
		}
		return nil, storageError(fmt.Errorf("failed to update item %d: %w", itemID, err))
	}
	return &it, nil
}

func (s *itemService) Get(ctx context.Context, itemID int) (*Item, error) {
	var it Item
	err := scanItem(s.pool.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = $1", itemID), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("item %d not found", itemID)
		}
		return nil, storageError(fmt.Errorf("failed to fetch item %d: %w", itemID, err))
	}
	return &it, nil
}

func (s *itemService) List(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+itemColumns+" FROM items WHERE is_active ORDER BY code")
	if err != nil {
		return nil, storageError(fmt.Errorf("failed to query items: %w", err))
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := scanItem(rows, &it); err != nil {
			return nil, storageError(fmt.Errorf("failed to scan item: %w", err))
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("failed to read items: %w", err))
	}
	return items, nil
}

func (s *itemService) Deactivate(ctx context.Context, itemID int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE items SET is_active = false WHERE id = $1", itemID)
	if err != nil {
		return storageError(fmt.Errorf("failed to deactivate item %d: %w", itemID, err))
	}
	if tag.RowsAffected() == 0 {
		return notFoundf("item %d not found", itemID)
	}
	return nil
}
