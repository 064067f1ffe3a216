// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля и пользовательские
// списки заведений. Структуры используются в бизнес‑логике и при
// работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное, регистрозависимое)
	Email        string    // Электронная почта (необязательная)
	PasswordHash string    // Хэш пароля пользователя, bcrypt
	Favorites    []string  // Индексы избранных заведений
	VisitLater   []string  // Индексы заведений "посетить позже"
	CreatedAt    time.Time // Дата регистрации
}
