package usecase

import (
	"context"
	"errors"

	appdomain "jobdeck-backend/internal/application/domain"
	"jobdeck-backend/internal/application/dto"
	authdomain "jobdeck-backend/internal/auth/domain"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidDate         = errors.New("invalid date format")
	ErrUserNotFound        = errors.New("user not found")

	// ErrNoMailboxGrant means the user never completed a mailbox consent flow
	ErrNoMailboxGrant = errors.New("no mailbox connected for this account")

	ErrWatchUnsupported  = errors.New("push notifications are only available for Gmail mailboxes")
	ErrSearchUnavailable = errors.New("semantic search is not configured")
)

// ApplicationUsecase covers manual application tracking plus read access to
// sync history and semantic search
type ApplicationUsecase interface {
	GetApplications(userID string) ([]*appdomain.Application, error)
	CreateApplication(userID string, req *dto.CreateApplicationRequest) (*appdomain.Application, error)
	UpdateApplication(userID, id string, req *dto.UpdateApplicationRequest) (*appdomain.Application, error)
	DeleteApplication(ctx context.Context, userID, id string) error
	GetSyncHistory(userID string, limit int) ([]*appdomain.SyncRun, error)
	SemanticSearch(ctx context.Context, userID, query string, limit int) (*dto.SemanticSearchResponse, error)
}

// SyncResult summarizes one mailbox sync run
type SyncResult struct {
	Processed int
	Skipped   int
}

// SyncUsecase runs the mailbox enrichment pipeline
type SyncUsecase interface {
	// SyncMailbox scans recent mail, extracts application events and
	// reconciles them into the user's tracked applications. Concurrent calls
	// for the same user share one run.
	SyncMailbox(ctx context.Context, userID string) (*SyncResult, error)

	WatchMailbox(ctx context.Context, userID string) error
	StopWatch(ctx context.Context, userID string) error
}

// MailboxClient is the provider-neutral view of one user's mailbox
type MailboxClient interface {
	ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessage(ctx context.Context, id string) (*appdomain.MailMessage, error)
	Close() error
}

// MailboxWatcher is implemented by clients that support push notifications
type MailboxWatcher interface {
	Watch(ctx context.Context, topicName string) error
	Stop(ctx context.Context) error
}

// MailboxProvider builds a mailbox client from a user's stored credentials
type MailboxProvider interface {
	ClientFor(ctx context.Context, user *authdomain.User) (MailboxClient, error)
}

// InteractionSearcher indexes interactions for semantic retrieval
type InteractionSearcher interface {
	UpsertInteraction(ctx context.Context, interactionID, userID, applicationID, subject, summary string) error
	SemanticSearch(ctx context.Context, userID, query string, limit int) ([]string, []float64, error)
	DeleteInteraction(ctx context.Context, interactionID string) error
}
