package usecase

import (
	"errors"
	"net/url"
	"testing"
	"time"

	authdomain "jobdeck-backend/internal/auth/domain"
	authdto "jobdeck-backend/internal/auth/dto"
	"jobdeck-backend/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeUserRepo struct {
	users         map[string]*authdomain.User
	refreshTokens map[string]*authdomain.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         map[string]*authdomain.User{},
		refreshTokens: map[string]*authdomain.RefreshToken{},
	}
}

func (f *fakeUserRepo) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(id string) (*authdomain.User, error) { return f.users[id], nil }
func (f *fakeUserRepo) Update(user *authdomain.User) error           { f.users[user.ID] = user; return nil }
func (f *fakeUserRepo) FindWithMailboxGrant() ([]*authdomain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}
func (f *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return f.refreshTokens[token], nil
}
func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.refreshTokens, token)
	return nil
}
func (f *fakeUserRepo) DeleteRefreshTokensByUser(userID string) error {
	for k, v := range f.refreshTokens {
		if v.UserID == userID {
			delete(f.refreshTokens, k)
		}
	}
	return nil
}

type fakeFCMRepo struct {
	tokens map[string]string // token -> userID
}

func (f *fakeFCMRepo) SaveToken(userID, token, deviceInfo string) error {
	f.tokens[token] = userID
	return nil
}
func (f *fakeFCMRepo) GetTokensByUserID(userID string) ([]authdomain.FCMToken, error) {
	return nil, nil
}
func (f *fakeFCMRepo) DeleteToken(token string) error        { delete(f.tokens, token); return nil }
func (f *fakeFCMRepo) DeleteTokensByUserID(userID string) error { return nil }

type fakeExchanger struct {
	token *oauth2.Token
	err   error
}

func (f *fakeExchanger) Exchange(code string) (*oauth2.Token, error) { return f.token, f.err }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
		GoogleClientID:   "client-id",
	}
}

func newAuthFixture() (*fakeUserRepo, AuthUsecase) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, &fakeFCMRepo{tokens: map[string]string{}}, testConfig())
	return repo, uc
}

func TestRegisterAndLogin(t *testing.T) {
	_, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{
		Email:    "me@example.com",
		Password: "secret123",
		Name:     "Me",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// password hash never leaves the usecase
	assert.NotEqual(t, "secret123", resp.User.Password)

	login, err := uc.Login(&authdto.LoginRequest{Email: "me@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	_, err = uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "b"})
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "me@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "ghost@example.com", Password: "right"})
	assert.Error(t, err)
}

func TestRefreshToken_Rotation(t *testing.T) {
	_, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestRefreshToken_AfterLogout(t *testing.T) {
	_, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(resp.RefreshToken))

	_, err = uc.RefreshToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	_, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	_, err = uc.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestGoogleCallback_StoresGrant(t *testing.T) {
	repo, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	consentURL, err := uc.GoogleConnectURL(resp.User.ID)
	require.NoError(t, err)
	assert.Contains(t, consentURL, "access_type=offline")
	assert.Contains(t, consentURL, "prompt=consent")

	// pull the state parameter straight from the generated URL
	parsed, err := url.Parse(consentURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	expiry := time.Now().Add(time.Hour)
	uc.(*authUsecase).SetOAuthExchanger(&fakeExchanger{token: &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}})

	user, err := uc.HandleGoogleCallback(state, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "access", user.GoogleAccessToken)
	assert.Equal(t, "refresh", user.GoogleRefreshToken)

	stored := repo.users[resp.User.ID]
	assert.True(t, stored.HasMailboxGrant())
}

func TestGoogleCallback_BadState(t *testing.T) {
	_, uc := newAuthFixture()
	uc.(*authUsecase).SetOAuthExchanger(&fakeExchanger{err: errors.New("should not be called")})

	_, err := uc.HandleGoogleCallback("forged-state", "auth-code")
	assert.Error(t, err)
}

func TestConnectIMAP(t *testing.T) {
	repo, uc := newAuthFixture()

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "me@example.com", Password: "a"})
	require.NoError(t, err)

	err = uc.ConnectIMAP(resp.User.ID, &authdto.IMAPConnectRequest{
		Host:     "imap.example.com:993",
		Username: "me@example.com",
		Password: "app-password",
	})
	require.NoError(t, err)
	assert.True(t, repo.users[resp.User.ID].HasMailboxGrant())
}
