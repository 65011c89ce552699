package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/metrics"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

// UserService реализует бизнес-логику учётных записей.
//
// Ответственность:
//   - регистрация (email уникален, пароль хранится только хэшем)
//   - логин и выпуск access-токена
//   - чтение, список, частичное обновление и удаление пользователей
//
// Кэша нет: каждый вызов идёт в хранилище.
// Наружу отдаются только ошибки четырёх видов: NotFound, Conflict, Unauthorized, Internal.
type UserService struct {
	reader UserReader
	writer UserWriter
	hasher crypto.PasswordHasher
	tokens *crypto.TokenIssuer
}

// LoginResult — пользователь и выпущенный для него access-токен.
type LoginResult struct {
	User  *models.User
	Token string
}

func NewUserService(reader UserReader, writer UserWriter, hasher crypto.PasswordHasher, tokens *crypto.TokenIssuer) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		tokens: tokens,
	}
}

// normalizeEmail — email сравнивается без учёта регистра и пробелов по краям.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser регистрирует нового пользователя.
//
// Если email уже занят — Conflict, запись не выполняется.
// Гонку двух одновременных регистраций разруливает уникальный индекс в базе,
// проигравший тоже получает Conflict.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (u *models.User, err error) {
	const op = "create user"
	defer func() { metrics.ObserveOperation("create", err) }()

	email = normalizeEmail(email)

	_, err = s.reader.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, serr.Conflict(op)
	case !errors.Is(err, serr.ErrNotFound):
		return nil, serr.Internal(op, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, serr.Internal(op, err)
	}

	u, err = s.writer.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return nil, serr.Conflict(op)
		}
		return nil, serr.Internal(op, err)
	}
	return u, nil
}

// Login проверяет email и пароль и выдаёт access-токен.
//
// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// чтобы не раскрывать факт существования email.
func (s *UserService) Login(ctx context.Context, email, password string) (res *LoginResult, err error) {
	const op = "login"
	defer func() { metrics.ObserveOperation("login", err) }()

	u, err := s.reader.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.Unauthorized()
		}
		return nil, serr.Internal(op, err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, serr.Internal(op, err)
	}
	if !ok {
		return nil, serr.Unauthorized()
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Email)
	if err != nil {
		return nil, serr.Internal(op, err)
	}
	return &LoginResult{User: u, Token: token}, nil
}

// GetUserByID возвращает пользователя по id.
// Невалидный uuid равносилен отсутствию пользователя.
func (s *UserService) GetUserByID(ctx context.Context, id string, relations models.Relations) (u *models.User, err error) {
	const op = "get user by id"
	defer func() { metrics.ObserveOperation("get_by_id", err) }()

	return s.findByID(ctx, op, id, relations)
}

func (s *UserService) findByID(ctx context.Context, op, id string, relations models.Relations) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, serr.NotFound(op)
	}

	u, err := s.reader.FindByID(ctx, uid, relations)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NotFound(op)
		}
		return nil, serr.Internal(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	const op = "get user by email"
	defer func() { metrics.ObserveOperation("get_by_email", err) }()

	u, err = s.reader.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NotFound(op)
		}
		return nil, serr.Internal(op, err)
	}
	return u, nil
}

// ListUsers возвращает пользователей под фильтр.
// relationsSpec — имена связей через запятую, пустая строка — без связей.
func (s *UserService) ListUsers(ctx context.Context, filter models.Filter, relationsSpec string) (users []models.User, err error) {
	const op = "list users"
	defer func() { metrics.ObserveOperation("list", err) }()

	users, err = s.reader.List(ctx, filter, models.ParseRelations(relationsSpec))
	if err != nil {
		return nil, serr.Internal(op, err)
	}
	return users, nil
}

// UpdateUserByID частично обновляет пользователя.
//
// Пароль из патча хэшируется, в хранилище уходит только хэш.
// Смена email на занятый другим пользователем — Conflict.
func (s *UserService) UpdateUserByID(ctx context.Context, id string, patch models.UserPatch) (u *models.User, err error) {
	const op = "update user"
	defer func() { metrics.ObserveOperation("update", err) }()

	current, err := s.findByID(ctx, op, id, nil)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email

		if email != current.Email {
			other, err := s.reader.FindByEmail(ctx, email)
			switch {
			case err == nil && other.ID != current.ID:
				return nil, serr.Conflict(op)
			case err != nil && !errors.Is(err, serr.ErrNotFound):
				return nil, serr.Internal(op, err)
			}
		}
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, serr.Internal(op, err)
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}

	u, err = s.writer.Update(ctx, current.ID, patch)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			return nil, serr.NotFound(op)
		case errors.Is(err, serr.ErrAlreadyExists):
			return nil, serr.Conflict(op)
		}
		return nil, serr.Internal(op, err)
	}
	return u, nil
}

// DeleteUserByID удаляет пользователя и возвращает его состояние до удаления.
func (s *UserService) DeleteUserByID(ctx context.Context, id string) (u *models.User, err error) {
	const op = "delete user"
	defer func() { metrics.ObserveOperation("delete", err) }()

	u, err = s.findByID(ctx, op, id, nil)
	if err != nil {
		return nil, err
	}

	if err = s.writer.Delete(ctx, u.ID); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NotFound(op)
		}
		return nil, serr.Internal(op, err)
	}
	return u, nil
}
