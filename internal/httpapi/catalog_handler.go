package httpapi

import (
	"net/http"
	"strconv"

	"github.com/KishoreBalajiP/eco-frontend/internal/catalog"
)

// CatalogHandler serves public product browsing; no session required.
type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.svc.Products(r.Context(), q.Get("q"), page, limit)
	if err != nil {
		respondError(w, err, "could not load products")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	product, err := h.svc.Product(r.Context(), id)
	if err != nil {
		respondError(w, err, "could not load the product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}
