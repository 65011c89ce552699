// Методы клиента для чтения, изменения и удаления пользователей.
package api

import (
	"context"
	"net/url"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// usersPath собирает путь /users[/id][?query].
func usersPath(id string, query url.Values) string {
	p := "/users"
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	if len(query) > 0 {
		p += "?" + query.Encode()
	}
	return p
}

// ListUsers возвращает пользователей под фильтр.
// query — параметры вида field[op]=value и relations.
func (c *Client) ListUsers(ctx context.Context, query url.Values, accessToken string) ([]models.User, error) {
	var resp []models.User
	err := c.GetJSON(ctx, usersPath("", query), &resp, accessToken)
	return resp, err
}

// GetUser возвращает пользователя по id. relations может быть пустым.
func (c *Client) GetUser(ctx context.Context, id, relations, accessToken string) (models.User, error) {
	var query url.Values
	if relations != "" {
		query = url.Values{"relations": {relations}}
	}

	var resp models.User
	err := c.GetJSON(ctx, usersPath(id, query), &resp, accessToken)
	return resp, err
}

// UpdateUser частично обновляет пользователя.
func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, accessToken string) (models.User, error) {
	var resp models.User
	err := c.PutJSON(ctx, usersPath(id, nil), req, &resp, accessToken)
	return resp, err
}

// DeleteUser удаляет пользователя и возвращает его состояние до удаления.
func (c *Client) DeleteUser(ctx context.Context, id, accessToken string) (models.DeleteUserResponse, error) {
	var resp models.DeleteUserResponse
	err := c.DeleteJSON(ctx, usersPath(id, nil), &resp, accessToken)
	return resp, err
}
