package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a billing client master record. Clients are never hard-deleted;
// Deactivate flips IsActive and excludes them from future selection, while
// snapshots already embedded in orders stay untouched.
type Client struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name"`
	Address1     string    `json:"address1"`
	Address2     string    `json:"address2"`
	Address3     string    `json:"address3"`
	State        string    `json:"state"`
	PostCode     string    `json:"post_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Item is a sellable catalog item. Code is unique across all items,
// active or not.
type Item struct {
	ID          int             `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SalesOrder is the aggregate root: one header plus the ordered line set it
// exclusively owns. CustomerName through PostCode are a snapshot of the
// referenced client taken at create/replace time; later client edits do not
// change them. InvoiceNo is unique among active orders only.
type SalesOrder struct {
	ID              int              `json:"id"`
	InvoiceNo       string           `json:"invoice_no"`
	InvoiceDate     string           `json:"invoice_date"` // YYYY-MM-DD
	ReferenceNo     string           `json:"reference_no"`
	ClientID        int              `json:"client_id"`
	CustomerName    string           `json:"customer_name"`
	Address1        string           `json:"address1"`
	Address2        string           `json:"address2"`
	Address3        string           `json:"address3"`
	State           string           `json:"state"`
	PostCode        string           `json:"post_code"`
	TotalExclAmount decimal.Decimal  `json:"total_excl_amount"`
	TotalTaxAmount  decimal.Decimal  `json:"total_tax_amount"`
	TotalInclAmount decimal.Decimal  `json:"total_incl_amount"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	ModifiedAt      *time.Time       `json:"modified_at,omitempty"`
	Lines           []SalesOrderLine `json:"lines"`
}

// SalesOrderLine is one numbered line on a sales order. ItemCode, Description
// and UnitPrice are snapshots of the referenced item taken when the line was
// written. LineNumber is a dense 1..N sequence assigned at write time.
type SalesOrderLine struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	LineNumber  int             `json:"line_number"`
	ItemID      int             `json:"item_id"`
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description"`
	Note        string          `json:"note"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	ExclAmount  decimal.Decimal `json:"excl_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	InclAmount  decimal.Decimal `json:"incl_amount"`
}

// OrderInput is the caller-supplied content for Create and Replace. Snapshots,
// line numbers and amounts are never taken from the caller.
type OrderInput struct {
	InvoiceNo   string
	InvoiceDate string // YYYY-MM-DD
	ReferenceNo string
	ClientID    int
	Lines       []LineInput
}

// LineInput is one requested line within an OrderInput. Unit price comes from
// the item catalog, not from the caller.
type LineInput struct {
	ItemID   int
	Note     string
	Quantity decimal.Decimal
	TaxRate  decimal.Decimal
}

// ClientInput is the caller-supplied content for client create/update.
type ClientInput struct {
	CustomerName string
	Address1     string
	Address2     string
	Address3     string
	State        string
	PostCode     string
}

// ItemInput is the caller-supplied content for item create/update.
type ItemInput struct {
	Code        string
	Description string
	UnitPrice   decimal.Decimal
}
