// File: internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the root of the ownership tree. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:320"`
	PasswordHash string    `gorm:"not null"`
	Name         *string
	IsAdmin      bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Providers     []Provider     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Conversations []Conversation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserView is the outward representation of a user, without the password hash.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View strips the password hash.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
