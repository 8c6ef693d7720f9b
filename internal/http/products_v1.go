package httpapi

import (
	"fmt"
	"net/http"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/obs"
	"github.com/gorilla/mux"
)

func (a *App) routesV1() *mux.Router {
	return productRoutes(a.listV1, a.createV1, a.getV1, a.updateV1, a.deleteV1)
}

func (a *App) listV1(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.V1.List())
}

func (a *App) getV1(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := a.V1.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// V1 accepts bodies with unknown fields, so V2-shaped payloads still work.
func (a *App) createV1(w http.ResponseWriter, r *http.Request) {
	var in model.ProductV1
	if !decodeBody(w, r, &in, false) {
		return
	}
	p := a.V1.Create(in)
	w.Header().Set("Location", fmt.Sprintf("/v1/products/%d", p.ID))
	writeJSON(w, http.StatusCreated, p)
	logMutation(r, "product_created", p.ID)
}

func (a *App) updateV1(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in model.ProductV1
	if !decodeBody(w, r, &in, false) {
		return
	}
	if err := a.V1.Update(id, in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logMutation(r, "product_replaced", id)
}

func (a *App) deleteV1(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.V1.Delete(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logMutation(r, "product_deleted", id)
}

func logMutation(r *http.Request, event string, id int, attrs ...any) {
	args := append([]any{
		"request_id", RequestIDFromContext(r.Context()),
		"api_version", APIVersionFromContext(r.Context()).String(),
		"product_id", id,
	}, attrs...)
	obs.Logger.Info(event, args...)
}
