package app

import "github.com/shopspring/decimal"

// OrderRequest is the input for creating or fully replacing a sales order.
// The same shape serves both operations: an update is always a whole-aggregate
// replacement, never a line-level edit.
type OrderRequest struct {
	InvoiceNo   string
	InvoiceDate string // YYYY-MM-DD
	ReferenceNo string
	ClientID    int
	Lines       []OrderLineRequest
}

// OrderLineRequest is a single line within an OrderRequest. Position in the
// slice determines the assigned line number.
type OrderLineRequest struct {
	ItemID   int
	Note     string
	Quantity decimal.Decimal
	TaxRate  decimal.Decimal // percentage, 0-100
}

// ClientRequest is the input for creating or updating a client.
type ClientRequest struct {
	CustomerName string
	Address1     string
	Address2     string
	Address3     string
	State        string
	PostCode     string
}

// ItemRequest is the input for creating or updating a catalog item.
type ItemRequest struct {
	Code        string
	Description string
	UnitPrice   decimal.Decimal
}
