package app

import "github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/core"

// OrderResult is returned by order mutations and GetOrder.
type OrderResult struct {
	Order *core.SalesOrder
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.SalesOrder
}

// ClientResult is returned by client mutations and GetClient.
type ClientResult struct {
	Client *core.Client
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client
}

// ItemResult is returned by item mutations and GetItem.
type ItemResult struct {
	Item *core.Item
}

// ItemListResult is returned by ListItems.
type ItemListResult struct {
	Items []core.Item
}
