package booking

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.DecideBooking)
	})
}

// CreateBooking handles a new reservation request.
// @Summary Request a booking
// @Description Request a booking of another user's item. The booking starts out WAITING.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		response.WithError(writer, failure.Unauthorized("unauthorized"))

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userId", userID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + userID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists the bookings made by the caller.
// @Summary List my bookings
// @Description List bookings made by the caller, newest start first, filtered by state.
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset of the first booking"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, model.RoleBooker, "GetBookings")
}

// GetOwnerBookings lists the bookings on items the caller owns.
// @Summary List bookings of my items
// @Description List bookings on items owned by the caller, newest start first, filtered by state.
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset of the first booking"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/owner [get]
func (handler *Handler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, model.RoleOwner, "GetOwnerBookings")
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, role model.Role, operation string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+operation)
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

	state := r.URL.Query().Get(constant.RequestParamState)

	bookings, err := handler.service.List(ctx, userID, role, state, pagination)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("role", string(role)).Str("state", state).Msg("failed to list bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking visible to the caller.
// @Summary Get a booking by ID
// @Description Only the booker and the owner of the booked item can see a booking.
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingId", id).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// DecideBooking approves or rejects a waiting booking.
// @Summary Approve or reject a booking
// @Description The owner of the booked item decides once, the outcome is final.
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param id path string true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} response.Data[dto.BookingResponse] "Decided booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
func (handler *Handler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DecideBooking")
	defer scope.End()

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	approved, ok := shared.ParseBool(r.URL.Query().Get(constant.RequestParamApproved))
	if !ok {
		err := failure.FieldValidation(constant.RequestParamApproved, "must be true or false")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Decide(ctx, userID, id, approved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingId", id).Bool("approved", approved).Msg("failed to decide booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + id + " decided by user " + userID)

	response.WithJSON(w, http.StatusOK, booking)
}
