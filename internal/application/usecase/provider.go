package usecase

import (
	"context"

	authdomain "jobdeck-backend/internal/auth/domain"
	authrepo "jobdeck-backend/internal/auth/repository"
	"jobdeck-backend/pkg/gmail"
	"jobdeck-backend/pkg/imap"

	"golang.org/x/oauth2"
)

// mailboxProvider picks the right mailbox backend for a user: Gmail when an
// OAuth grant exists, IMAP otherwise. Refreshed Google tokens are written
// back to the user record.
type mailboxProvider struct {
	gmailSvc *gmail.Service
	imapSvc  *imap.Service
	userRepo authrepo.UserRepository
}

// NewMailboxProvider creates the production mailbox provider
func NewMailboxProvider(gmailSvc *gmail.Service, imapSvc *imap.Service, userRepo authrepo.UserRepository) MailboxProvider {
	return &mailboxProvider{
		gmailSvc: gmailSvc,
		imapSvc:  imapSvc,
		userRepo: userRepo,
	}
}

func (p *mailboxProvider) ClientFor(ctx context.Context, user *authdomain.User) (MailboxClient, error) {
	if user.GoogleRefreshToken != "" || user.GoogleAccessToken != "" {
		onRefresh := func(token *oauth2.Token) error {
			user.GoogleAccessToken = token.AccessToken
			if token.RefreshToken != "" {
				user.GoogleRefreshToken = token.RefreshToken
			}
			expiry := token.Expiry
			user.GoogleTokenExpiry = &expiry
			return p.userRepo.Update(user)
		}
		return p.gmailSvc.ClientFor(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, onRefresh)
	}

	return p.imapSvc.ClientFor(user.IMAPHost, user.IMAPUsername, user.IMAPPassword)
}
