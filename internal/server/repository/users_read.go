package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

const selectUser = `SELECT id, name, email, password, "createdAt", "updatedAt" FROM "user"`

// UsersReadRepository — хранилище пользователей только на чтение.
type UsersReadRepository struct {
	db *sql.DB
}

func NewUsersReadRepository(db *sql.DB) *UsersReadRepository {
	return &UsersReadRepository{db: db}
}

// rowScanner — общий интерфейс *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID ищет пользователя по id.
// Связи пока не подгружаются: у пользователя их нет.
func (r *UsersReadRepository) FindByID(ctx context.Context, id uuid.UUID, _ models.Relations) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	return u, nil
}

// FindByEmail ищет пользователя по email (точное совпадение).
func (r *UsersReadRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return u, nil
}

// List возвращает пользователей, подходящих под все условия фильтра.
// Пустой фильтр — все пользователи.
func (r *UsersReadRepository) List(ctx context.Context, filter models.Filter, _ models.Relations) ([]models.User, error) {
	where, args := buildWhere(filter)

	query := selectUser + where + ` ORDER BY "createdAt", id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error listing users: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// Ping проверяет доступность базы (readiness).
func (r *UsersReadRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
