// Package services содержит бизнес-логику работы с пользовательскими
// списками заведений: чтение через кеш, атомарное переключение элементов
// и публикацию событий активности.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/models"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

// Статусы, которые возвращает переключение элемента списка.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// cacheTTL — время жизни закешированного списка.
const cacheTTL = time.Hour

// ListRepository определяет методы для работы со списками в хранилище.
type ListRepository interface {
	// GetList возвращает содержимое списка пользователя.
	GetList(ctx context.Context, username string, list models.ListName) ([]string, error)
	// ToggleListItem атомарно переключает принадлежность элемента списку,
	// возвращает true, если элемент был добавлен.
	ToggleListItem(ctx context.Context, username, item string, list models.ListName) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Publisher отправляет события активности в брокер.
type Publisher interface {
	PublishListEvent(event models.ListEvent) error
}

// Metrics описывает счетчики переключений.
type Metrics interface {
	RecordListToggle(list models.ListName, action string)
}

// ListsService реализует бизнес-логику работы со списками заведений.
type ListsService struct {
	repo      ListRepository
	cache     Cache
	publisher Publisher // nil отключает публикацию событий
	metrics   Metrics
	log       *slog.Logger
}

// NewListsService создает новый экземпляр ListsService.
func NewListsService(repo ListRepository, cache Cache, publisher Publisher, metrics Metrics, log *slog.Logger) *ListsService {
	return &ListsService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

func cacheKey(username string, list models.ListName) string {
	return fmt.Sprintf("lists:%s:%s", username, list)
}

// GetList возвращает список пользователя, используя кеш или хранилище.
// Для пользователя без записей возвращается пустой срез, не ошибка.
func (s *ListsService) GetList(ctx context.Context, username string, list models.ListName) ([]string, error) {
	key := cacheKey(username, list)

	var items []string
	found, err := s.cache.Get(key, &items)
	if err != nil {
		s.log.Warn("failed to read list from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return items, nil
	}

	items, err = s.repo.GetList(ctx, username, list)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	if err := s.cache.Set(key, items, cacheTTL); err != nil {
		s.log.Warn("failed to cache list", slog.String("key", key), sl.Err(err))
	}
	return items, nil
}

// ToggleItem переключает принадлежность item списку пользователя и возвращает
// выполненное действие: ActionAdded или ActionRemoved. Ответ формируется только
// после подтверждения записи хранилищем. Повторный идентичный запрос снова
// переключит состояние: направление операции определяется текущим членством.
func (s *ListsService) ToggleItem(ctx context.Context, username, item string, list models.ListName) (string, error) {
	added, err := s.repo.ToggleListItem(ctx, username, item, list)
	if err != nil {
		return "", err
	}

	action := ActionRemoved
	if added {
		action = ActionAdded
	}

	key := cacheKey(username, list)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate list cache", slog.String("key", key), sl.Err(err))
	}

	s.metrics.RecordListToggle(list, action)

	if s.publisher != nil {
		event := models.ListEvent{
			Username: username,
			List:     list,
			Item:     item,
			Action:   action,
			At:       time.Now().UTC(),
		}
		if err := s.publisher.PublishListEvent(event); err != nil {
			s.log.Warn("failed to publish list event", sl.Err(err))
		}
	}

	return action, nil
}
