// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/wheretodine/internal/lib/jwt"
	"github.com/magabrotheeeer/wheretodine/internal/lib/password"
	"github.com/magabrotheeeer/wheretodine/internal/models"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любой ошибке проверки учетных данных.
// Неизвестный username и неверный пароль не различаются, чтобы не давать
// перечислять зарегистрированные имена.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Metrics описывает счетчики, которые ведет сервис аутентификации.
type Metrics interface {
	RecordRegistration()
	RecordLogin(success bool)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	metrics  Metrics
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, metrics Metrics) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		metrics:  metrics,
	}
}

// Register создает нового пользователя с хэшированием пароля и выпускает
// для него токен. Занятый username всплывает как repository.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, email string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	token, err := s.jwtMaker.GenerateToken(username, uid)
	if err != nil {
		return "", err
	}
	s.metrics.RecordRegistration()
	return token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// ErrInvalidCredentials возвращается только для неизвестного имени или
// неверного пароля; сбой хранилища всплывает как есть.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.RecordLogin(false)
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		s.metrics.RecordLogin(false)
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", err
	}
	s.metrics.RecordLogin(true)
	return token, nil
}

// ValidateToken проверяет JWT и возвращает идентичность пользователя из claims.
// Обращения к хранилищу нет: валидность токена — это подпись и срок действия.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		UID:      claims.UserUID,
	}, nil
}

// Profile возвращает пользователя по UID из токена.
// Если запись успела исчезнуть, всплывает repository.ErrUserNotFound.
func (s *AuthService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}
