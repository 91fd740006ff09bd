package domain

import "time"

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"` // Never return password in JSON
	Name     string `json:"name"`

	// Mailbox grant (Google OAuth). Owned by the consent flow; the sync
	// pipeline only reads these and fails when they are absent.
	GoogleAccessToken  string     `json:"-"`
	GoogleRefreshToken string     `json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`

	// Alternative mailbox grant for non-Gmail accounts (IMAP app password)
	IMAPHost     string `json:"-"`
	IMAPUsername string `json:"-"`
	IMAPPassword string `json:"-"`

	GmailConnected bool      `json:"gmail_connected" gorm:"-"`
	IMAPConnected  bool      `json:"imap_connected" gorm:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasMailboxGrant reports whether any mailbox credential is present
func (u *User) HasMailboxGrant() bool {
	return u.GoogleRefreshToken != "" || u.GoogleAccessToken != "" || u.IMAPHost != ""
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
