// Package service содержит бизнес-логику сервиса учётных записей.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_users.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Reader UserReader
	Writer UserWriter
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users  *UserService
	Health HealthRepo
}

// NewServices собирает все сервисы приложения.
// cfg нужен для выбора алгоритма хэширования и параметров токенов.
func NewServices(repos Repositories, cfg *config.Config) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		return nil, err
	}

	tokens := crypto.NewTokenIssuer(JWTConfig(cfg))

	return &Services{
		Users:  NewUserService(repos.Reader, repos.Writer, hasher, tokens),
		Health: repos.Health,
	}, nil
}

// JWTConfig собирает параметры токенов из конфига сервера.
// Одни и те же параметры нужны и для выпуска, и для проверки токена.
func JWTConfig(cfg *config.Config) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UserReader — хранилище пользователей на чтение.
// Отсутствие записи — errors.ErrNotFound.
type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID, relations models.Relations) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.Filter, relations models.Relations) ([]models.User, error)
}

// UserWriter — хранилище пользователей на запись.
// Нарушение уникальности email — errors.ErrAlreadyExists, отсутствие записи — errors.ErrNotFound.
type UserWriter interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
