package app

import "context"

// ApplicationService is the single interface request-handling adapters call.
// It decouples transport from business logic; implementations carry no HTTP
// or display concerns.
type ApplicationService interface {
	// CreateOrder creates a new sales order aggregate.
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)

	// ReplaceOrder fully replaces an order's header fields and line set.
	ReplaceOrder(ctx context.Context, orderID int, req OrderRequest) (*OrderResult, error)

	// DeleteOrder soft-deletes an order, freeing its invoice number.
	DeleteOrder(ctx context.Context, orderID int) error

	// GetOrder returns a single order, active or soft-deleted.
	GetOrder(ctx context.Context, orderID int) (*OrderResult, error)

	// ListOrders returns active orders, most recently created first.
	ListOrders(ctx context.Context) (*OrderListResult, error)

	// CreateClient adds a client to the directory.
	CreateClient(ctx context.Context, req ClientRequest) (*ClientResult, error)

	// UpdateClient edits a client record. Existing order snapshots keep the
	// details captured when they were written.
	UpdateClient(ctx context.Context, clientID int, req ClientRequest) (*ClientResult, error)

	// GetClient returns a single client by id.
	GetClient(ctx context.Context, clientID int) (*ClientResult, error)

	// ListClients returns active clients ordered by name.
	ListClients(ctx context.Context) (*ClientListResult, error)

	// DeleteClient deactivates a client.
	DeleteClient(ctx context.Context, clientID int) error

	// CreateItem adds an item to the catalog.
	CreateItem(ctx context.Context, req ItemRequest) (*ItemResult, error)

	// UpdateItem edits an item record. Existing line snapshots keep the
	// code, description and price captured when they were written.
	UpdateItem(ctx context.Context, itemID int, req ItemRequest) (*ItemResult, error)

	// GetItem returns a single item by id.
	GetItem(ctx context.Context, itemID int) (*ItemResult, error)

	// ListItems returns active items ordered by code.
	ListItems(ctx context.Context) (*ItemListResult, error)

	// DeleteItem deactivates an item, excluding it from new order lines.
	DeleteItem(ctx context.Context, itemID int) error
}
