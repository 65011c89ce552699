// HTTP-хендлеры логина и текущего пользователя
package api

import (
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// Login обрабатывает вход пользователя и выдачу access-токена.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или не заполнены email/password;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Checks email and password and returns the user with a one hour access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Credentials"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON or invalid input"
// @Failure      401 {object} models.ErrorResponse "Invalid email or password"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	res, err := h.Svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		User:  toUserDTO(res.User),
		Token: res.Token,
	})
}

// Me возвращает данные из access-токена текущего пользователя.
//
// @Summary      Current user
// @Description  Returns id and email carried by the bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MeResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, models.MeResponse{ID: claims.UserID, Email: claims.Email})
}
