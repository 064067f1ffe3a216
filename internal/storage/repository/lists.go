package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/wheretodine/internal/models"
)

// GetList возвращает содержимое списка пользователя.
// Пустой список — это не ошибка: вернется пустой срез.
func (s *Storage) GetList(ctx context.Context, username string, list models.ListName) ([]string, error) {
	const op = "storage.GetList"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// list ограничен константами models.ListName, подстановка имени колонки безопасна.
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, list.Column())
	var items []string
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(typeMap.SQLScanner(&items)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// ToggleListItem атомарно переключает принадлежность item списку пользователя
// одним UPDATE: если элемент уже есть — удаляет его, иначе добавляет в конец.
// Возвращает true, если элемент был добавлен. Один оператор без чтения перед
// записью исключает потерю обновлений при конкурентных переключениях и
// гарантирует отсутствие дубликатов в списке.
func (s *Storage) ToggleListItem(ctx context.Context, username, item string, list models.ListName) (bool, error) {
	const op = "storage.ToggleListItem"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`UPDATE users
			  SET %[1]s = CASE WHEN $1 = ANY(%[1]s) THEN array_remove(%[1]s, $1)
			                   ELSE array_append(%[1]s, $1) END
			  WHERE username = $2
			  RETURNING $1 = ANY(%[1]s);`, list.Column())
	var added bool
	if err := s.DB.QueryRowContext(ctx, query, item, username).Scan(&added); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return added, nil
}
