// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-sql/civil"

	requestutil "github.com/taibuivan/herdbook/internal/platform/request"
	"github.com/taibuivan/herdbook/internal/platform/respond"
	"github.com/taibuivan/herdbook/internal/platform/validate"
	"github.com/taibuivan/herdbook/pkg/convert"
	"github.com/taibuivan/herdbook/pkg/pagination"
	"github.com/taibuivan/herdbook/pkg/query"
	"github.com/taibuivan/herdbook/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for the herd, its events, and sales.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler constructs a new livestock [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Routes returns a [chi.Router] configured with livestock endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.register)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.detail)
		subRouter.Put("/", handler.updateInfo)
		subRouter.Post("/move", handler.move)

		subRouter.Post("/health-events", handler.registerHealth)
		subRouter.Patch("/recover", handler.recoverAnimal)

		subRouter.Post("/estrus", handler.estrus)
		subRouter.Post("/inseminations", handler.insemination)
		subRouter.Post("/pregnancy-checks", handler.pregnancyCheck)
		subRouter.Post("/calvings", handler.calving)

		subRouter.Post("/sale", handler.registerSale)
	})

	return router
}

// SaleRoutes returns the sold-animal endpoints.
func (handler *Handler) SaleRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listSales)
	router.Get("/{livestockID}", handler.getSale)
	return router
}

// PenRoutes returns the endpoints listing animals by pen.
func (handler *Handler) PenRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}/livestock", handler.listByPen)
	return router
}

// DashboardRoutes returns the herd summary endpoint.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.dashboard)
	return router
}

// # Registry Endpoints

/*
GET /api/v1/livestock.

Request (Query):
  - tag: string (ear tag suffix)
  - status: string (comma separated; defaults to every unsold status)

Response:
  - 200: []Livestock
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	filter := ListFilter{
		TagSuffix: strings.TrimSpace(values.Get("tag")),
		Statuses: slice.Map(query.StringSlice(values.Get("status")), func(status string) Status {
			return Status(status)
		}),
	}

	herd, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, herd)
}

/*
POST /api/v1/livestock.

Request (Body):
  - RegisterInput

Response:
  - 201: Livestock
  - 400: Validation
  - 404: Pen, mother, or father not found
  - 409: DUPLICATE_EAR_TAG
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	animal, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, animal)
}

/*
GET /api/v1/livestock/{id}.

Response:
  - 200: Detail
  - 404: Livestock not found
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
PUT /api/v1/livestock/{id}.

Request (Body):
  - UpdateInput

Response:
  - 200: Livestock
  - 400: Validation
  - 404: Livestock not found
*/
func (handler *Handler) updateInfo(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	animal, err := handler.service.UpdateInfo(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, animal)
}

type moveRequest struct {
	PenID int64 `json:"pen_id"`
}

/*
POST /api/v1/livestock/{id}/move.

Request (Body):
  - pen_id: int64

Response:
  - 204: Moved, or already in that pen
  - 404: Livestock or pen not found
  - 409: PEN_CAPACITY_EXCEEDED
*/
func (handler *Handler) move(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input moveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.PenID <= 0 {
		respond.Error(writer, request, validate.RequiredError("pen_id", "Must be a positive integer identifier"))
		return
	}

	if err := handler.service.Move(request.Context(), id, input.PenID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/pens/{id}/livestock.

Response:
  - 200: []Livestock
  - 404: Pen not found
*/
func (handler *Handler) listByPen(writer http.ResponseWriter, request *http.Request) {
	penID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	herd, err := handler.service.ListByPen(request.Context(), penID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, herd)
}

// # Lifecycle Endpoints

/*
POST /api/v1/livestock/{id}/health-events.

Request (Body):
  - HealthInput

Response:
  - 201: Health
  - 400: Validation
  - 404: Livestock not found
*/
func (handler *Handler) registerHealth(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HealthInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.RegisterHealth(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

// PATCH /api/v1/livestock/{id}/recover.
func (handler *Handler) recoverAnimal(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	animal, err := handler.service.Recover(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, animal)
}

// POST /api/v1/livestock/{id}/estrus.
func (handler *Handler) estrus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input EstrusInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.Estrus(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

/*
POST /api/v1/livestock/{id}/inseminations.

Response:
  - 201: Breeding (with expected_date)
*/
func (handler *Handler) insemination(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input InseminationInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.Insemination(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

// POST /api/v1/livestock/{id}/pregnancy-checks.
func (handler *Handler) pregnancyCheck(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PregnancyCheckInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.PregnancyCheck(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

/*
POST /api/v1/livestock/{id}/calvings.

Response:
  - 201: Livestock (the calf)
  - 404: Mother not found
  - 409: DUPLICATE_EAR_TAG
*/
func (handler *Handler) calving(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CalvingInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	calf, err := handler.service.Calving(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, calf)
}

// # Sale Endpoints

/*
POST /api/v1/livestock/{id}/sale.

Request (Body):
  - SaleInput

Response:
  - 201: Sale
  - 400: Validation, NOT_SAFE_TO_SELL
  - 404: Livestock not found
  - 409: ALREADY_SOLD
*/
func (handler *Handler) registerSale(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SaleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.service.RegisterSale(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sale)
}

/*
GET /api/v1/sales.

Request (Query):
  - page, limit: int

Response:
  - 200: []SaleRecord with pagination meta
*/
func (handler *Handler) listSales(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	records, total, err := handler.service.ListSales(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/sales/{livestockID}.

Response:
  - 200: Sale
  - 404: NOT_FOUND, SALE_NOT_FOUND
*/
func (handler *Handler) getSale(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "livestockID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.service.GetSale(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sale)
}

// # Dashboard

/*
GET /api/v1/dashboard.

Request (Query):
  - date: YYYY-MM-DD (defaults to today)
  - days: int (due-delivery horizon, 1 to 365, defaults to 30)

Response:
  - 200: Dashboard
  - 400: Invalid date or horizon
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	today := civil.DateOf(handler.now())
	if raw := values.Get("date"); raw != "" {
		parsed, err := civil.ParseDate(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("date", "Must be a valid date (YYYY-MM-DD)"))
			return
		}
		today = parsed
	}

	days := convert.ToIntD(values.Get("days"), DefaultDueHorizon)
	if err := (&validate.Validator{}).Range("days", days, 1, MaxDueHorizon).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Dashboard(request.Context(), today, days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
