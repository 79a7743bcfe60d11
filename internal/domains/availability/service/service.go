package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	"shareit/internal/domains/availability/model"
	bookingModel "shareit/internal/domains/booking/model"
	bookingRepo "shareit/internal/domains/booking/repository"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"time"

	"github.com/rs/zerolog/log"
)

// Availability aggregates an item's booking history into its next and last booking
// and decides who may leave feedback on it.
type Availability interface {
	Project(ctx context.Context, itemID string, viewerIsOwner bool, asOf time.Time) (model.Projection, error)
	CanComment(ctx context.Context, userID, itemID string, asOf time.Time) (bool, error)
}

type serviceImpl struct {
	repo bookingRepo.Booking
	otel otel.Otel
}

func New(repo bookingRepo.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Project ignores booking status, a rejected booking still counts as next or last.
func (s *serviceImpl) Project(ctx context.Context, itemID string, viewerIsOwner bool, asOf time.Time) (res model.Projection, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Project")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !viewerIsOwner {
		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  bookingRepo.OrderByStart,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.repo.GetAll(ctx, params, bookingRepo.FilterByItem(itemID))
	if err != nil {
		log.Error().Err(err).Str("itemId", itemID).Msg("failed to get item bookings")

		return res, fmt.Errorf("failed to get item bookings: %w", err)
	}

	res.Next = bookingModel.NextBooking(bookings, asOf)
	res.Last = bookingModel.LastBooking(bookings, asOf)

	return res, nil
}

// CanComment is true once the user has a booking of the item that ended before asOf, whatever its status.
func (s *serviceImpl) CanComment(ctx context.Context, userID, itemID string, asOf time.Time) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CanComment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Exist(ctx, bookingRepo.FilterFinishedByBooker(userID, itemID, asOf))
	if err != nil {
		log.Error().Err(err).Str("itemId", itemID).Str("userId", userID).Msg("failed to check finished bookings")

		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}

	return res, nil
}
