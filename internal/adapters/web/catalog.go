package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/app"
)

type clientBody struct {
	CustomerName string `json:"customer_name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Address3     string `json:"address3"`
	State        string `json:"state"`
	PostCode     string `json:"post_code"`
}

func (b clientBody) toRequest() app.ClientRequest {
	return app.ClientRequest{
		CustomerName: b.CustomerName,
		Address1:     b.Address1,
		Address2:     b.Address2,
		Address3:     b.Address3,
		State:        b.State,
		PostCode:     b.PostCode,
	}
}

type itemBody struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ── Clients ──────────────────────────────────────────────────────────────────

// apiListClients handles GET /api/clients.
func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListClients(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Clients)
}

// apiGetClient handles GET /api/clients/{id}.
func (h *Handler) apiGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

// apiCreateClient handles POST /api/clients.
func (h *Handler) apiCreateClient(w http.ResponseWriter, r *http.Request) {
	var body clientBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateClient(r.Context(), body.toRequest())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Client)
}

// apiUpdateClient handles PUT /api/clients/{id}.
func (h *Handler) apiUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body clientBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateClient(r.Context(), id, body.toRequest())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

// apiDeleteClient handles DELETE /api/clients/{id} (deactivation).
func (h *Handler) apiDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteClient(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Items ────────────────────────────────────────────────────────────────────

// apiListItems handles GET /api/items.
func (h *Handler) apiListItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Items)
}

// apiGetItem handles GET /api/items/{id}.
func (h *Handler) apiGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Item)
}

// apiCreateItem handles POST /api/items.
func (h *Handler) apiCreateItem(w http.ResponseWriter, r *http.Request) {
	var body itemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateItem(r.Context(), app.ItemRequest(body))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Item)
}

// apiUpdateItem handles PUT /api/items/{id}.
func (h *Handler) apiUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body itemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateItem(r.Context(), id, app.ItemRequest(body))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Item)
}

// apiDeleteItem handles DELETE /api/items/{id} (deactivation).
func (h *Handler) apiDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
