package usecase

import (
	authdomain "jobdeck-backend/internal/auth/domain"
	authdto "jobdeck-backend/internal/auth/dto"

	"golang.org/x/oauth2"
)

// AuthUsecase defines the business logic for authentication and
// mailbox-grant consent flows
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	// GoogleConnectURL returns the OAuth consent URL that grants the app
	// read access to the user's Gmail mailbox
	GoogleConnectURL(userID string) (string, error)

	// HandleGoogleCallback exchanges the authorization code and stores the
	// mailbox grant on the user identified by the state token
	HandleGoogleCallback(state, code string) (*authdomain.User, error)

	// ConnectIMAP stores an IMAP mailbox grant for non-Gmail accounts
	ConnectIMAP(userID string, req *authdto.IMAPConnectRequest) error

	RegisterFCMToken(userID, token, deviceInfo string) error
	UnregisterFCMToken(token string) error
}

// OAuthExchanger abstracts the code-for-token exchange so tests can
// substitute a fake instead of calling Google
type OAuthExchanger interface {
	Exchange(code string) (*oauth2.Token, error)
}
