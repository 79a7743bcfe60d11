package user

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/user/service"
	"shareit/shared/constant"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the read-only user directory. Users are provisioned outside this service.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/users/{id}", handler.GetUser)
}

// GetUser returns the profile of a booker or item owner.
// @Summary Get a user
// @Tags User
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller ID"
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [get]
func (handler *Handler) GetUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".user.GetUser")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamID)
	scope.SetAttribute("user.id", userID)

	profile, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, profile)
}
