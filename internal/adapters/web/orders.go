package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/app"
)

// orderBody is the JSON shape shared by create and replace.
type orderBody struct {
	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`
	ReferenceNo string `json:"reference_no"`
	ClientID    int    `json:"client_id"`
	Lines       []struct {
		ItemID   int             `json:"item_id"`
		Note     string          `json:"note"`
		Quantity decimal.Decimal `json:"quantity"`
		TaxRate  decimal.Decimal `json:"tax_rate"`
	} `json:"lines"`
}

func (b orderBody) toRequest() app.OrderRequest {
	req := app.OrderRequest{
		InvoiceNo:   b.InvoiceNo,
		InvoiceDate: b.InvoiceDate,
		ReferenceNo: b.ReferenceNo,
		ClientID:    b.ClientID,
	}
	for _, l := range b.Lines {
		req.Lines = append(req.Lines, app.OrderLineRequest{
			ItemID:   l.ItemID,
			Note:     l.Note,
			Quantity: l.Quantity,
			TaxRate:  l.TaxRate,
		})
	}
	return req
}

// idParam parses the {id} URL parameter, answering 400 on garbage.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// apiListOrders handles GET /api/orders.
func (h *Handler) apiListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOrders(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Orders)
}

// apiGetOrder handles GET /api/orders/{id}.
func (h *Handler) apiGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiCreateOrder handles POST /api/orders.
// Body: { invoice_no, invoice_date, reference_no?, client_id,
// lines: [{item_id, note?, quantity, tax_rate}] }
func (h *Handler) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), body.toRequest())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Order)
}

// apiReplaceOrder handles PUT /api/orders/{id}. The body fully replaces the
// order's header fields and line set.
func (h *Handler) apiReplaceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.ReplaceOrder(r.Context(), id, body.toRequest())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiDeleteOrder handles DELETE /api/orders/{id} (soft delete).
func (h *Handler) apiDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
