package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/otel"
	availabilityService "shareit/internal/domains/availability/service"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	"shareit/shared"
	"shareit/shared/cache"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem = "item:get"
)

type Item interface {
	Find(ctx context.Context, id string) (model.Item, error)
	Load(ctx context.Context, id string) (model.Item, error)
	Get(ctx context.Context, viewerID, itemID string) (dto.ItemResponse, error)
	GetByOwner(ctx context.Context, ownerID string, pagination *gDto.Pagination) ([]dto.ItemResponse, error)
}

type serviceImpl struct {
	repo         repository.Item
	availability availabilityService.Availability
	clock        timezone.Clock
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Item,
	availability availabilityService.Availability,
	clock timezone.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		clock:        clock,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Find is the catalog lookup for display paths. The raw item carries no booking
// data so it is safe to cache.
func (s *serviceImpl) Find(ctx context.Context, id string) (res model.Item, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Find")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetItem, id), s.cfg.Cache.Expiration(),
		func(ctx context.Context) (model.Item, error) {
			return s.load(ctx, id)
		})
}

// Load always reads the catalog. Booking guards on availability and ownership use it
// so a stale cached copy can never admit a booking.
func (s *serviceImpl) Load(ctx context.Context, id string) (res model.Item, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.load(ctx, id)
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Item, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("itemId", id).Msg("failed to get item")

		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == "" {
		return item, failure.EntityNotFound(model.EntityName, id) // nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) Get(ctx context.Context, viewerID, itemID string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.Find(ctx, itemID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	now := s.clock.Now()

	projection, err := s.availability.Project(ctx, item.ID, item.OwnerID == viewerID, now)
	if err != nil {
		return res, fmt.Errorf("failed to project item bookings: %w", err)
	}

	canComment, err := s.availability.CanComment(ctx, viewerID, item.ID, now)
	if err != nil {
		return res, fmt.Errorf("failed to check comment eligibility: %w", err)
	}

	res.FromModel(item, projection)
	res.CanComment = &canComment

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string, pagination *gDto.Pagination) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := pagination.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	params := pagination.ToQueryParams(model.TableName+"."+model.FieldCreatedAt, gDto.SortDirAsc)

	items, err := s.repo.GetAll(ctx, params, repository.FilterByOwner(ownerID))
	if err != nil {
		log.Error().Err(err).Str("ownerId", ownerID).Msg("failed to get owner items")

		return nil, fmt.Errorf("failed to get owner items: %w", err)
	}

	now := s.clock.Now()
	res = make([]dto.ItemResponse, 0, len(items))

	for _, item := range items {
		projection, err := s.availability.Project(ctx, item.ID, true, now)
		if err != nil {
			return nil, fmt.Errorf("failed to project item bookings: %w", err)
		}

		var itemRes dto.ItemResponse

		itemRes.FromModel(item, projection)
		res = append(res, itemRes)
	}

	return res, nil
}
