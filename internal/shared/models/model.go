package models

import "time"

// User — публичное представление пользователя в HTTP API.
//
// Хэш пароля сюда не попадает никогда.
//
// Поля:
//   - ID: идентификатор пользователя (UUID в виде строки)
//   - Name: отображаемое имя
//   - Email: уникальный email
//   - CreatedAt / UpdatedAt: серверные метки времени
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest — запрос на регистрацию пользователя.
//
// Используется в:
//
//	POST /users
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest — частичное обновление пользователя.
//
// Используется в:
//
//	PUT /users/{id}
//
// Поля — указатели, чтобы отличать "не передано" от пустого значения.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// LoginRequest — тело запроса входа.
//
// Используется в:
//
//	POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ на успешный вход: пользователь и access-токен.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// DeleteUserResponse — ответ на удаление, содержит снимок удалённой записи.
type DeleteUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MeResponse — данные из access-токена текущего пользователя.
//
// Используется в:
//
//	GET /me
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}
