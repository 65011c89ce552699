// Методы клиента для регистрации, входа и получения текущего пользователя.
package api

import (
	"context"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// Register регистрирует пользователя (POST /users) и возвращает созданную запись.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	var resp models.User
	err := c.PostJSON(ctx, "/users", models.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход (POST /login) и возвращает пользователя и access-токен.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.PostJSON(ctx, "/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me возвращает id и email из access-токена (GET /me).
func (c *Client) Me(ctx context.Context, accessToken string) (models.MeResponse, error) {
	var resp models.MeResponse
	err := c.GetJSON(ctx, "/me", &resp, accessToken)
	return resp, err
}
