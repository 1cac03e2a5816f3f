// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/jwt"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/password"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
	"github.com/magabrotheeeer/intrusion-monitor/internal/storage/repository"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrUserExists возвращается при попытке регистрации с занятым email.
	ErrUserExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials возвращается при любой ошибке входа:
	// неизвестный email и неверный пароль наружу неразличимы.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает созданную запись.
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// normalizeRole приводит роль к одной из допустимых.
// Любое неизвестное значение становится analyst, а не ошибкой.
func normalizeRole(role string) string {
	switch role {
	case models.RoleAnalyst, models.RoleAdmin:
		return role
	default:
		return models.RoleAnalyst
	}
}

// Signup создает нового пользователя с хэшированием пароля и выдает токен сессии.
//
// Проверка занятости email выполняется до вставки, но источником истины
// остается уникальное ограничение в базе: конкурентная регистрация того же
// адреса также завершается ErrUserExists, без частичной записи.
func (s *AuthService) Signup(ctx context.Context, fullName, email, rawPassword, role string) (*models.User, string, error) {
	const op = "services.auth.Signup"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		Role:         normalizeRole(role),
	}
	created, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(created.UID, created.Email, created.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	created.PasswordHash = ""
	return created, token, nil
}

// Signin проверяет пароль пользователя и выдает токен сессии.
func (s *AuthService) Signin(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Signin"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, token, nil
}

// ValidateToken проверяет JWT и возвращает данные аутентифицированного пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Profile возвращает актуальную запись пользователя по UID из токена.
func (s *AuthService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.auth.Profile"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, nil
}
