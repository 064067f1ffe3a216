package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wheretodine/internal/models"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

type ListRepoMock struct {
	mock.Mock
}

func (m *ListRepoMock) GetList(ctx context.Context, username string, list models.ListName) ([]string, error) {
	args := m.Called(ctx, username, list)
	items, _ := args.Get(0).([]string)
	return items, args.Error(1)
}

func (m *ListRepoMock) ToggleListItem(ctx context.Context, username, item string, list models.ListName) (bool, error) {
	args := m.Called(ctx, username, item, list)
	return args.Bool(0), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if items, ok := args.Get(2).([]string); ok {
		*(result.(*[]string)) = items
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishListEvent(event models.ListEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

type ListMetricsMock struct {
	mock.Mock
}

func (m *ListMetricsMock) RecordListToggle(list models.ListName, action string) {
	m.Called(list, action)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListsService_GetList(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss reads storage and fills cache", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		cacheMock.On("Get", "lists:alice:favorites", mock.Anything).
			Return(false, nil, nil).Once()
		repoMock.On("GetList", ctx, "alice", models.ListFavorites).
			Return([]string{"cafe_42"}, nil).Once()
		cacheMock.On("Set", "lists:alice:favorites", []string{"cafe_42"}, time.Hour).
			Return(nil).Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		items, err := service.GetList(ctx, "alice", models.ListFavorites)
		require.NoError(t, err)
		assert.Equal(t, []string{"cafe_42"}, items)

		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		cacheMock.On("Get", "lists:alice:favorites", mock.Anything).
			Return(true, nil, []string{"cafe_7"}).Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		items, err := service.GetList(ctx, "alice", models.ListFavorites)
		require.NoError(t, err)
		assert.Equal(t, []string{"cafe_7"}, items)

		repoMock.AssertNotCalled(t, "GetList", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to storage", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		cacheMock.On("Get", "lists:alice:visit_later", mock.Anything).
			Return(false, errors.New("redis down"), nil).Once()
		repoMock.On("GetList", ctx, "alice", models.ListVisitLater).
			Return([]string{"cafe_1"}, nil).Once()
		cacheMock.On("Set", "lists:alice:visit_later", []string{"cafe_1"}, time.Hour).
			Return(nil).Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		items, err := service.GetList(ctx, "alice", models.ListVisitLater)
		require.NoError(t, err)
		assert.Equal(t, []string{"cafe_1"}, items)
	})

	t.Run("unknown user yields empty list", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		cacheMock.On("Get", "lists:ghost1:favorites", mock.Anything).
			Return(false, nil, nil).Once()
		repoMock.On("GetList", ctx, "ghost1", models.ListFavorites).
			Return(nil, repository.ErrUserNotFound).Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		items, err := service.GetList(ctx, "ghost1", models.ListFavorites)
		require.NoError(t, err)
		assert.Equal(t, []string{}, items)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		cacheMock.On("Get", "lists:alice:favorites", mock.Anything).
			Return(false, nil, nil).Once()
		repoMock.On("GetList", ctx, "alice", models.ListFavorites).
			Return(nil, errors.New("db down")).Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		_, err := service.GetList(ctx, "alice", models.ListFavorites)
		assert.Error(t, err)
	})
}

func TestListsService_ToggleItem(t *testing.T) {
	ctx := context.Background()

	t.Run("added", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		publisherMock := new(PublisherMock)
		metricsMock := new(ListMetricsMock)

		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListFavorites).
			Return(true, nil).Once()
		cacheMock.On("Invalidate", "lists:alice:favorites").Return(nil).Once()
		metricsMock.On("RecordListToggle", models.ListFavorites, ActionAdded).Return().Once()
		publisherMock.On("PublishListEvent", mock.MatchedBy(func(e models.ListEvent) bool {
			return e.Username == "alice" && e.Item == "cafe_42" &&
				e.List == models.ListFavorites && e.Action == ActionAdded
		})).Return(nil).Once()

		service := NewListsService(repoMock, cacheMock, publisherMock, metricsMock, newNoopLogger())

		action, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListFavorites)
		require.NoError(t, err)
		assert.Equal(t, ActionAdded, action)

		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
		publisherMock.AssertExpectations(t)
		metricsMock.AssertExpectations(t)
	})

	t.Run("removed", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListVisitLater).
			Return(false, nil).Once()
		cacheMock.On("Invalidate", "lists:alice:visit_later").Return(nil).Once()
		metricsMock.On("RecordListToggle", models.ListVisitLater, ActionRemoved).Return().Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		action, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListVisitLater)
		require.NoError(t, err)
		assert.Equal(t, ActionRemoved, action)
	})

	// Два одинаковых запроса подряд возвращают список в исходное состояние.
	t.Run("double toggle is identity", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		metricsMock := new(ListMetricsMock)

		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListFavorites).
			Return(true, nil).Once()
		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListFavorites).
			Return(false, nil).Once()
		cacheMock.On("Invalidate", "lists:alice:favorites").Return(nil).Twice()
		metricsMock.On("RecordListToggle", models.ListFavorites, ActionAdded).Return().Once()
		metricsMock.On("RecordListToggle", models.ListFavorites, ActionRemoved).Return().Once()

		service := NewListsService(repoMock, cacheMock, nil, metricsMock, newNoopLogger())

		first, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListFavorites)
		require.NoError(t, err)
		second, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListFavorites)
		require.NoError(t, err)

		assert.Equal(t, ActionAdded, first)
		assert.Equal(t, ActionRemoved, second)
	})

	t.Run("storage failure propagates without side effects", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		publisherMock := new(PublisherMock)
		metricsMock := new(ListMetricsMock)

		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListFavorites).
			Return(false, errors.New("db down")).Once()

		service := NewListsService(repoMock, cacheMock, publisherMock, metricsMock, newNoopLogger())

		_, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListFavorites)
		assert.Error(t, err)

		cacheMock.AssertNotCalled(t, "Invalidate", mock.Anything)
		publisherMock.AssertNotCalled(t, "PublishListEvent", mock.Anything)
		metricsMock.AssertNotCalled(t, "RecordListToggle", mock.Anything, mock.Anything)
	})

	t.Run("publisher failure does not fail the toggle", func(t *testing.T) {
		repoMock := new(ListRepoMock)
		cacheMock := new(CacheMock)
		publisherMock := new(PublisherMock)
		metricsMock := new(ListMetricsMock)

		repoMock.On("ToggleListItem", ctx, "alice", "cafe_42", models.ListFavorites).
			Return(true, nil).Once()
		cacheMock.On("Invalidate", "lists:alice:favorites").Return(nil).Once()
		metricsMock.On("RecordListToggle", models.ListFavorites, ActionAdded).Return().Once()
		publisherMock.On("PublishListEvent", mock.Anything).
			Return(errors.New("broker down")).Once()

		service := NewListsService(repoMock, cacheMock, publisherMock, metricsMock, newNoopLogger())

		action, err := service.ToggleItem(ctx, "alice", "cafe_42", models.ListFavorites)
		require.NoError(t, err)
		assert.Equal(t, ActionAdded, action)
	})
}
