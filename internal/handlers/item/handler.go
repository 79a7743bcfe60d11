package item

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/item/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
	})
}

// GetItems lists the caller's items with their booking availability.
// @Summary List my items
// @Description List items owned by the caller, each with its next and last booking.
// @Tags Item
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param from query int false "Offset of the first item"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[[]dto.ItemResponse] "Items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items [get]
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	pagination, err := gDto.PaginationFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	items, err := handler.service.GetByOwner(ctx, userID, pagination)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userId", userID).Msg("failed to get items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID retrieves an item. Its owner also sees the next and last booking.
// @Summary Get an item by ID
// @Description Next and last booking are only shown to the owner, can_comment to everyone.
// @Tags Item
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse] "Item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	item, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("itemId", id).Msg("failed to get item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}
