// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/herdbook/internal/platform/request"
	"github.com/taibuivan/herdbook/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for barns, pens, and grid layouts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new barn [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with barn endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBarns)
	router.Post("/", handler.createBarn)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/pens", handler.listPens)
		subRouter.Get("/layout", handler.getLayout)
		subRouter.Put("/layout", handler.saveLayout)
	})

	return router
}

// # Barn Endpoints

/*
GET /api/v1/barns.

Response:
  - 200: []Barn
*/
func (handler *Handler) listBarns(writer http.ResponseWriter, request *http.Request) {
	barns, err := handler.service.ListBarns(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, barns)
}

type createBarnRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/barns.

Request (Body):
  - name: string

Response:
  - 201: Barn
  - 400: Validation
  - 409: DUPLICATE_BARN_NAME
*/
func (handler *Handler) createBarn(writer http.ResponseWriter, request *http.Request) {
	var input createBarnRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	barn, err := handler.service.CreateBarn(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, barn)
}

/*
GET /api/v1/barns/{id}/pens.

Response:
  - 200: []Pen
  - 404: Barn not found
*/
func (handler *Handler) listPens(writer http.ResponseWriter, request *http.Request) {
	barnID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pens, err := handler.service.ListPens(request.Context(), barnID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pens)
}

// # Layout Endpoints

/*
GET /api/v1/barns/{id}/layout.

Response:
  - 200: LayoutView
  - 404: Barn not found
*/
func (handler *Handler) getLayout(writer http.ResponseWriter, request *http.Request) {
	barnID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetLayout(request.Context(), barnID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

type saveLayoutRequest struct {
	Layouts []TargetLayout `json:"layouts"`
}

/*
PUT /api/v1/barns/{id}/layout.

Description: Replaces the barn grid. Pens missing from layouts are unplaced;
entries with a "new" pen create that pen first.

Request (Body):
  - layouts: []TargetLayout

Response:
  - 200: LayoutView (the grid after the save)
  - 400: Validation
  - 404: Barn or pen not found
  - 409: PEN_OCCUPIED, DUPLICATE_PEN_NAME
*/
func (handler *Handler) saveLayout(writer http.ResponseWriter, request *http.Request) {
	barnID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input saveLayoutRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReconcileLayout(request.Context(), barnID, input.Layouts); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetLayout(request.Context(), barnID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
