package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxInvoiceNoLen    = 50
	maxReferenceNoLen  = 100
	maxCustomerNameLen = 200
	maxAddressLen      = 200
	maxStateLen        = 100
	maxPostCodeLen     = 20
	maxItemCodeLen     = 50
)

// validate collects every violation in the order input rather than stopping
// at the first, so callers can report them all in one round trip.
func (in OrderInput) validate() []string {
	var violations []string

	switch {
	case strings.TrimSpace(in.InvoiceNo) == "":
		violations = append(violations, "invoice_no is required")
	case len(in.InvoiceNo) > maxInvoiceNoLen:
		violations = append(violations, fmt.Sprintf("invoice_no cannot exceed %d characters", maxInvoiceNoLen))
	}

	if in.InvoiceDate == "" {
		violations = append(violations, "invoice_date is required")
	} else if _, err := time.Parse("2006-01-02", in.InvoiceDate); err != nil {
		violations = append(violations, "invoice_date must be in YYYY-MM-DD format")
	}

	if len(in.ReferenceNo) > maxReferenceNoLen {
		violations = append(violations, fmt.Sprintf("reference_no cannot exceed %d characters", maxReferenceNoLen))
	}

	if in.ClientID <= 0 {
		violations = append(violations, "client_id is required")
	}

	if len(in.Lines) == 0 {
		violations = append(violations, "order must contain at least one line")
	}
	for i, l := range in.Lines {
		if l.ItemID <= 0 {
			violations = append(violations, fmt.Sprintf("line %d: item_id is required", i+1))
		}
		if !l.Quantity.IsPositive() {
			violations = append(violations, fmt.Sprintf("line %d: quantity must be greater than zero", i+1))
		}
		if l.TaxRate.IsNegative() || l.TaxRate.GreaterThan(hundred) {
			violations = append(violations, fmt.Sprintf("line %d: tax_rate must be between 0 and 100", i+1))
		}
	}

	return violations
}

func (in ClientInput) validate() []string {
	var violations []string

	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		violations = append(violations, "customer_name is required")
	case len(in.CustomerName) > maxCustomerNameLen:
		violations = append(violations, fmt.Sprintf("customer_name cannot exceed %d characters", maxCustomerNameLen))
	}

	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"address1", in.Address1, maxAddressLen},
		{"address2", in.Address2, maxAddressLen},
		{"address3", in.Address3, maxAddressLen},
		{"state", in.State, maxStateLen},
		{"post_code", in.PostCode, maxPostCodeLen},
	} {
		if len(f.value) > f.max {
			violations = append(violations, fmt.Sprintf("%s cannot exceed %d characters", f.name, f.max))
		}
	}

	return violations
}

func (in ItemInput) validate() []string {
	var violations []string

	switch {
	case strings.TrimSpace(in.Code) == "":
		violations = append(violations, "code is required")
	case len(in.Code) > maxItemCodeLen:
		violations = append(violations, fmt.Sprintf("code cannot exceed %d characters", maxItemCodeLen))
	}

	if in.UnitPrice.IsNegative() {
		violations = append(violations, "unit_price must not be negative")
	}

	return violations
}
