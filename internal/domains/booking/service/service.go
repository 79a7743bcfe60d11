package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/kafka"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	itemService "shareit/internal/domains/item/service"
	userService "shareit/internal/domains/user/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const eventTypeHeader = "event-type"

type Booking interface {
	Create(ctx context.Context, callerID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Decide(ctx context.Context, callerID, bookingID string, approve bool) (dto.BookingResponse, error)
	Get(ctx context.Context, callerID, bookingID string) (dto.BookingResponse, error)
	List(ctx context.Context, callerID string, role model.Role, state string, pagination *gDto.Pagination) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo  repository.Booking
	users userService.User
	items itemService.Item
	kafka kafka.Client
	clock timezone.Clock
	cfg   *config.Config
	otel  otel.Otel
}

func New(
	repo repository.Booking,
	users userService.User,
	items itemService.Item,
	kafka kafka.Client,
	clock timezone.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:  repo,
		users: users,
		items: items,
		kafka: kafka,
		clock: clock,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, callerID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.users.Get(ctx, callerID); err != nil {
		return res, err //nolint:wrapcheck
	}

	item, err := s.items.Load(ctx, req.ItemID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !item.Available {
		return res, model.ErrItemUnavailable
	}

	// Owners cannot book their own item; report it the same way as a missing booking.
	if item.OwnerID == callerID {
		return res, failure.EntityNotFound(model.EntityName, item.ID) // nolint:wrapcheck
	}

	now := s.clock.Now()

	if err = model.ValidateTimeRange(req.Start, req.End, now); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking := req.ToModel(callerID, now)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ItemOwnerID = item.OwnerID
	booking.ItemName = item.Name

	s.publish(ctx, dto.NewBookingEvent(dto.EventTypeCreated, booking, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Decide(ctx context.Context, callerID, bookingID string, approve bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Decide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.ItemOwnerID != callerID {
		return res, failure.EntityNotFound(model.EntityName, bookingID) // nolint:wrapcheck
	}

	decided, err := booking.Decide(approve)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	now := s.clock.Now()
	updatedFields := shared.ChangedColumns(dto.DecideBookingRequest{Status: decided.Status}, callerID, now)

	affected, err := s.repo.Update(ctx, updatedFields, repository.FilterWaitingByID(bookingID))
	if err != nil {
		log.Error().Err(err).Str("bookingId", bookingID).Msg("failed to decide booking")

		return res, fmt.Errorf("failed to decide booking: %w", err)
	}

	// Someone else decided the booking between the read and the write.
	if affected == 0 {
		return res, model.ErrInvalidTransition
	}

	decided.ModifiedAt = now
	decided.ModifiedBy = callerID

	s.publish(ctx, dto.NewBookingEvent(dto.EventTypeDecided, decided, now))

	res.FromModel(decided)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, callerID, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if !booking.VisibleTo(callerID) {
		return res, failure.EntityNotFound(model.EntityName, bookingID) // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) List(
	ctx context.Context,
	callerID string,
	role model.Role,
	state string,
	pagination *gDto.Pagination,
) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.users.Get(ctx, callerID); err != nil {
		return nil, err //nolint:wrapcheck
	}

	parsed, err := model.ParseState(state)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = pagination.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	filter, err := repository.BuildFilter(role, callerID, parsed, s.clock.Now())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"booking.role":  string(role),
		"booking.state": string(parsed),
	})

	bookings, err := s.repo.GetAll(ctx, pagination.ToQueryParams(repository.OrderByStart, gDto.SortDirDesc), filter)
	if err != nil {
		log.Error().Err(err).Str("role", string(role)).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return dto.FromModels(bookings), nil
}

// find always reads the repository, decisions must never act on a stale status.
func (s *serviceImpl) find(ctx context.Context, bookingID string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingId", bookingID).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.EntityNotFound(model.EntityName, bookingID) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, event dto.BookingEvent) {
	topic := s.cfg.Kafka.BookingTopic()

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		message := kafka.Message{
			Key:     event.BookingID,
			Value:   event,
			Headers: map[string]string{eventTypeHeader: event.Type},
		}

		if err := s.kafka.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Str("bookingId", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}
