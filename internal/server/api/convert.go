package api

import (
	srvmodels "github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// toUserDTO — публичное представление пользователя, без хэша пароля.
func toUserDTO(u *srvmodels.User) models.User {
	return models.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDTOs(users []srvmodels.User) []models.User {
	out := make([]models.User, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out
}
