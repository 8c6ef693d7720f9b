package httpapi

import (
	"fmt"
	"net/http"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/gorilla/mux"
)

func (a *App) routesV2() *mux.Router {
	r := productRoutes(a.listV2, a.createV2, a.getV2, a.updateV2, a.deleteV2)
	r.HandleFunc("/products/{id}/stock", a.adjustStockV2).Methods(http.MethodPatch)
	return r
}

func (a *App) listV2(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.V2.List(r.URL.Query().Get("category")))
}

func (a *App) getV2(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := a.V2.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) createV2(w http.ResponseWriter, r *http.Request) {
	var in model.ProductV2
	if !decodeBody(w, r, &in, true) {
		return
	}
	p, err := a.V2.Create(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/v2/products/%d", p.ID))
	writeJSON(w, http.StatusCreated, p)
	logMutation(r, "product_created", p.ID, "stock", p.StockQuantity)
}

func (a *App) updateV2(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in model.ProductV2
	if !decodeBody(w, r, &in, true) {
		return
	}
	if err := a.V2.Update(id, in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logMutation(r, "product_replaced", id, "stock", in.StockQuantity)
}

func (a *App) deleteV2(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.V2.Delete(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logMutation(r, "product_deleted", id)
}

// adjustStockV2 answers with the updated product rather than 204 so clients
// see the resulting stock.
func (a *App) adjustStockV2(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var adj model.StockAdjustment
	if !decodeBody(w, r, &adj, true) {
		return
	}
	p, err := a.V2.AdjustStock(id, adj)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
	logMutation(r, "product_stock_adjusted", id, "delta", adj.Delta, "stock", p.StockQuantity)
}
