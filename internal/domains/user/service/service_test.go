package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	userMocks "shareit/internal/domains/user/mocks"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/service"
	cacheMocks "shareit/shared/cache/mocks"
	"shareit/shared/failure"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), "user:get:u1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.UserResponse)
				res.ID = "u1"
				res.Name = "cached"

				return nil
			})

		res, err := svc.Get(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "cached", res.Name)
	})

	t.Run("cache miss loads from repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "user:get:u1", gomock.Any()).Return(errors.New("miss"))
		mockCache.EXPECT().Save(gomock.Any(), "user:get:u1", gomock.Any(), time.Hour).Return(nil).AnyTimes()
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}, nil)

		res, err := svc.Get(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", res.ID)
		assert.Equal(t, "alice@example.com", res.Email)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "ghost")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "user with id=ghost not found", err.Error())
	})

	t.Run("repository error is internal", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("connection reset"))

		_, err := svc.Get(context.Background(), "u1")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
