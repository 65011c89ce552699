package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

const returningUser = ` RETURNING id, name, email, password, "createdAt", "updatedAt"`

// UsersWriteRepository — хранилище пользователей на запись.
type UsersWriteRepository struct {
	db *sql.DB
}

func NewUsersWriteRepository(db *sql.DB) *UsersWriteRepository {
	return &UsersWriteRepository{db: db}
}

// isUniqueViolation проверяет, что postgres вернул unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create сохраняет нового пользователя. id и даты проставляет база.
func (r *UsersWriteRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	created, err := scanUser(r.db.QueryRowContext(ctx,
		`INSERT INTO "user" (name, email, password)
		 VALUES ($1, $2, $3)`+returningUser,
		u.Name, u.Email, u.PasswordHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, serr.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Update частично обновляет пользователя: пишутся только заданные поля патча,
// "updatedAt" обновляется всегда.
func (r *UsersWriteRepository) Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	add("name", patch.Name)
	add("email", patch.Email)
	add("password", patch.PasswordHash)
	sets = append(sets, `"updatedAt" = now()`)

	args = append(args, id)
	query := `UPDATE "user" SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + returningUser

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, serr.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

// Delete удаляет пользователя по id.
func (r *UsersWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
