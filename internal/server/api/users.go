// HTTP-хендлеры CRUD пользователей
package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	srvmodels "github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// MsgUserDeleted — сообщение в ответе на удаление.
const MsgUserDeleted = "user deleted"

// CreateUser регистрирует нового пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан;
//   - 400 Bad Request: неверный JSON, не заполнены поля или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a user. Email must be unique, the password is stored as a hash only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.CreateUserRequest true "New user"
// @Success      201 {object} models.User
// @Failure      400 {object} models.ErrorResponse "Bad JSON, invalid input or email already registered"
// @Failure      413 {object} models.ErrorResponse "Payload too large"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	u, err := h.Svc.Users.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// ListUsers возвращает пользователей под фильтр из query.
//
// Фильтр: field[op]=value, например name[ilike]=%ann%&createdAt[between]=2024-01-01,2024-12-31.
// relations — связи через запятую, фильтром не считается.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        relations query string false "Comma separated relations"
// @Success      200 {array}  models.User
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	users, err := h.Svc.Users.ListUsers(r.Context(), ParseFilter(q), q.Get(RelationsKey))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// GetUser возвращает пользователя по id.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  string true  "User ID (UUID)"
// @Param        relations query string false "Comma separated relations"
// @Success      200 {object} models.User
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	relations := srvmodels.ParseRelations(r.URL.Query().Get(RelationsKey))

	u, err := h.Svc.Users.GetUserByID(r.Context(), id, relations)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// UpdateUser частично обновляет пользователя: меняются только переданные поля.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "User ID (UUID)"
// @Param        request body models.UpdateUserRequest true "Fields to change"
// @Success      200 {object} models.User
// @Failure      400 {object} models.ErrorResponse "Bad JSON, invalid input or email already registered"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validPatch(req) {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	u, err := h.Svc.Users.UpdateUserByID(r.Context(), id, srvmodels.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// validPatch — хотя бы одно поле передано, и переданные поля не пустые.
func validPatch(req models.UpdateUserRequest) bool {
	if req.Name == nil && req.Email == nil && req.Password == nil {
		return false
	}
	for _, v := range []*string{req.Name, req.Email, req.Password} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return false
		}
	}
	return true
}

// DeleteUser удаляет пользователя и возвращает его состояние до удаления.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID (UUID)"
// @Success      200 {object} models.DeleteUserResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.Svc.Users.DeleteUserByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteUserResponse{
		Message: MsgUserDeleted,
		User:    toUserDTO(u),
	})
}
