package service

import (
	"github.com/google/uuid"

	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/transport"
)

// projectUser strips the password hash and resolves preferences to
// {id, name} pairs. order, when given, fixes the preference order to
// the one the client submitted.
func projectUser(user *models.User, order []uuid.UUID) transport.UserResponse {
	prefs := make([]transport.CategoryDTO, 0, len(user.Preferences))
	if order != nil {
		for _, id := range order {
			for _, cat := range user.Preferences {
				if cat.ID == id {
					prefs = append(prefs, transport.CategoryDTO{ID: cat.ID, Name: cat.Name})
					break
				}
			}
		}
	} else {
		for _, cat := range user.Preferences {
			prefs = append(prefs, transport.CategoryDTO{ID: cat.ID, Name: cat.Name})
		}
	}

	return transport.UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Email:       user.Email,
		Profile:     user.Profile,
		Preferences: prefs,
	}
}
