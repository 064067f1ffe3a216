// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и их списками заведений. Предоставляет
// методы регистрации, поиска пользователей и атомарного переключения
// принадлежности элемента списку.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Сигнальные ошибки хранилища. Обработчики по ним выбирают HTTP-статус.
var (
	// ErrUserExists возвращается при регистрации занятого username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

// typeMap используется для сканирования колонок TEXT[] в []string
// через database/sql.
var typeMap = pgtype.NewMap()

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и списками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// isUniqueViolation распознает нарушение уникального ограничения (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
