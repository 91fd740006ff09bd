package repository

import (
	authdomain "jobdeck-backend/internal/auth/domain"
)

// UserRepository defines data access for users and refresh tokens
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// FindWithMailboxGrant returns users holding any mailbox credential,
	// used by the background sync scheduler
	FindWithMailboxGrant() ([]*authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}
