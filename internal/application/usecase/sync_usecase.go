package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	appdomain "jobdeck-backend/internal/application/domain"
	"jobdeck-backend/internal/application/repository"
	authrepo "jobdeck-backend/internal/auth/repository"
	"jobdeck-backend/pkg/ai"
	"jobdeck-backend/pkg/match"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SyncConfig carries the tunables of the mailbox enrichment pipeline
type SyncConfig struct {
	Query       string        // mailbox search query, e.g. `newer_than:7d subject:(application OR interview)`
	MaxResults  int64         // first-page cap on listed messages
	CallTimeout time.Duration // per mailbox/AI call
	PubSubTopic string        // Gmail push notification topic
}

type syncUsecase struct {
	userRepo    authrepo.UserRepository
	appRepo     repository.ApplicationRepository
	syncRunRepo repository.SyncRunRepository
	provider    MailboxProvider
	extractor   ai.ExtractorService
	resolver    match.Resolver
	searcher    InteractionSearcher // nil when semantic search is not configured
	cfg         SyncConfig

	// collapses concurrent syncs for the same user into one run
	group singleflight.Group
}

// NewSyncUsecase creates the mailbox sync usecase. searcher may be nil.
func NewSyncUsecase(
	userRepo authrepo.UserRepository,
	appRepo repository.ApplicationRepository,
	syncRunRepo repository.SyncRunRepository,
	provider MailboxProvider,
	extractor ai.ExtractorService,
	resolver match.Resolver,
	searcher InteractionSearcher,
	cfg SyncConfig,
) SyncUsecase {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 100
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return &syncUsecase{
		userRepo:    userRepo,
		appRepo:     appRepo,
		syncRunRepo: syncRunRepo,
		provider:    provider,
		extractor:   extractor,
		resolver:    resolver,
		searcher:    searcher,
		cfg:         cfg,
	}
}

func (s *syncUsecase) SyncMailbox(ctx context.Context, userID string) (*SyncResult, error) {
	v, err, _ := s.group.Do(userID, func() (interface{}, error) {
		return s.runSync(ctx, userID)
	})
	if v == nil {
		return nil, err
	}
	return v.(*SyncResult), err
}

func (s *syncUsecase) runSync(ctx context.Context, userID string) (*SyncResult, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.HasMailboxGrant() {
		return nil, ErrNoMailboxGrant
	}

	startedAt := time.Now()

	client, err := s.provider.ClientFor(ctx, user)
	if err != nil {
		err = fmt.Errorf("failed to open mailbox: %w", err)
		s.recordRun(userID, startedAt, nil, err)
		return nil, err
	}
	defer client.Close()

	ids, err := s.listMessages(ctx, client)
	if err != nil {
		s.recordRun(userID, startedAt, nil, err)
		return nil, err
	}

	result := &SyncResult{}
	if len(ids) == 0 {
		s.recordRun(userID, startedAt, result, nil)
		return result, nil
	}

	seen, err := s.loadSeenInteractions(userID)
	if err != nil {
		s.recordRun(userID, startedAt, nil, err)
		return nil, err
	}

	apps, err := s.appRepo.FindByUserID(userID)
	if err != nil {
		s.recordRun(userID, startedAt, nil, err)
		return nil, err
	}
	working := newWorkingSet(apps)

	for _, id := range ids {
		if ctx.Err() != nil {
			s.recordRun(userID, startedAt, result, ctx.Err())
			return result, ctx.Err()
		}
		s.processMessage(ctx, client, userID, id, seen, working, result)
	}

	s.recordRun(userID, startedAt, result, nil)
	log.Printf("[Sync] User %s: %d processed, %d skipped", userID, result.Processed, result.Skipped)
	return result, nil
}

// processMessage handles one message end to end. Every failure is local to
// the message: it is logged, counted as skipped and the loop moves on.
func (s *syncUsecase) processMessage(
	ctx context.Context,
	client MailboxClient,
	userID, id string,
	seen map[string]struct{},
	working *workingSet,
	result *SyncResult,
) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	msg, err := client.GetMessage(callCtx, id)
	cancel()
	if err != nil {
		log.Printf("[Sync] Failed to fetch message %s: %v", id, err)
		result.Skipped++
		return
	}

	if !msg.HasBody() {
		result.Skipped++
		return
	}

	key := interactionKey(msg.Subject, msg.ReceivedAt)
	if _, dup := seen[key]; dup {
		result.Skipped++
		return
	}

	callCtx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
	extraction, err := s.extractor.ExtractApplication(callCtx, msg.Subject, msg.Body)
	cancel()
	if err != nil {
		if !errors.Is(err, ai.ErrUnusableExtraction) {
			log.Printf("[Sync] Extraction failed for message %s: %v", id, err)
		}
		result.Skipped++
		return
	}

	app, created := s.reconcile(userID, extraction, msg.ReceivedAt, working)
	if app == nil {
		result.Skipped++
		return
	}

	interaction := &appdomain.Interaction{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Timestamp:     msg.ReceivedAt,
		Subject:       msg.Subject,
		Summary:       extraction.Summary,
		Type:          appdomain.Status(extraction.Status),
	}
	if err := s.appRepo.CreateInteraction(interaction); err != nil {
		log.Printf("[Sync] Failed to record interaction for message %s: %v", id, err)
		result.Skipped++
		return
	}

	if s.searcher != nil {
		if err := s.searcher.UpsertInteraction(ctx, interaction.ID, userID, app.ID, interaction.Subject, interaction.Summary); err != nil {
			log.Printf("[Sync] Failed to index interaction %s: %v", interaction.ID, err)
		}
	}

	seen[key] = struct{}{}
	result.Processed++
	if created {
		log.Printf("[Sync] Created application %q for user %s", app.Company, userID)
	}
}

// reconcile matches the extraction against the user's applications by company
// key. A match updates the existing application; otherwise a new one is
// created with its dates seeded from the email time. Returns nil when
// persistence failed.
func (s *syncUsecase) reconcile(
	userID string,
	extraction *ai.ApplicationExtraction,
	receivedAt time.Time,
	working *workingSet,
) (*appdomain.Application, bool) {
	if idx, ok := s.resolver.Match(extraction.CompanyName, working.companies); ok {
		app := working.apps[idx]
		app.Status = appdomain.Status(extraction.Status)
		app.NextStep = extraction.NextStep
		contactedAt := receivedAt
		app.LastContactedAt = &contactedAt
		if err := s.appRepo.Update(app); err != nil {
			log.Printf("[Sync] Failed to update application %s: %v", app.ID, err)
			return nil, false
		}
		return app, false
	}

	appliedAt := receivedAt
	contactedAt := receivedAt
	app := &appdomain.Application{
		ID:              uuid.NewString(),
		UserID:          userID,
		Company:         extraction.CompanyName,
		Role:            extraction.Role,
		Status:          appdomain.Status(extraction.Status),
		NextStep:        extraction.NextStep,
		AppliedAt:       &appliedAt,
		LastContactedAt: &contactedAt,
	}
	if err := s.appRepo.Create(app); err != nil {
		log.Printf("[Sync] Failed to create application %q: %v", extraction.CompanyName, err)
		return nil, false
	}
	working.add(app)
	return app, true
}

func (s *syncUsecase) listMessages(ctx context.Context, client MailboxClient) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	ids, err := client.ListMessageIDs(callCtx, s.cfg.Query, s.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return ids, nil
}

// loadSeenInteractions builds the duplicate filter from every interaction the
// user already has, keyed on the exact (subject, timestamp) pair
func (s *syncUsecase) loadSeenInteractions(userID string) (map[string]struct{}, error) {
	interactions, err := s.appRepo.FindInteractionsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	seen := make(map[string]struct{}, len(interactions))
	for _, interaction := range interactions {
		seen[interactionKey(interaction.Subject, interaction.Timestamp)] = struct{}{}
	}
	return seen, nil
}

func (s *syncUsecase) recordRun(userID string, startedAt time.Time, result *SyncResult, runErr error) {
	run := &appdomain.SyncRun{
		ID:         uuid.NewString(),
		UserID:     userID,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Status:     appdomain.SyncRunSuccess,
	}
	if result != nil {
		run.Processed = result.Processed
		run.Skipped = result.Skipped
	}
	if runErr != nil {
		run.Status = appdomain.SyncRunFailed
		run.Error = runErr.Error()
	}
	if err := s.syncRunRepo.Create(run); err != nil {
		log.Printf("[Sync] Failed to record sync run for user %s: %v", userID, err)
	}
}

func (s *syncUsecase) WatchMailbox(ctx context.Context, userID string) error {
	client, err := s.mailboxFor(ctx, userID)
	if err != nil {
		return err
	}
	defer client.Close()

	watcher, ok := client.(MailboxWatcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return watcher.Watch(ctx, s.cfg.PubSubTopic)
}

func (s *syncUsecase) StopWatch(ctx context.Context, userID string) error {
	client, err := s.mailboxFor(ctx, userID)
	if err != nil {
		return err
	}
	defer client.Close()

	watcher, ok := client.(MailboxWatcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return watcher.Stop(ctx)
}

func (s *syncUsecase) mailboxFor(ctx context.Context, userID string) (MailboxClient, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.HasMailboxGrant() {
		return nil, ErrNoMailboxGrant
	}
	return s.provider.ClientFor(ctx, user)
}

// interactionKey is the duplicate filter key. Timestamps compare at full
// precision; two emails with the same subject a millisecond apart are
// distinct events.
func interactionKey(subject string, ts time.Time) string {
	return subject + "|" + strconv.FormatInt(ts.UnixNano(), 10)
}

// workingSet is the in-memory view of the user's applications during one
// sync run. Parallel slices keep resolver candidate indexes aligned with
// their applications.
type workingSet struct {
	apps      []*appdomain.Application
	companies []string
}

func newWorkingSet(apps []*appdomain.Application) *workingSet {
	ws := &workingSet{
		apps:      make([]*appdomain.Application, 0, len(apps)),
		companies: make([]string, 0, len(apps)),
	}
	for _, app := range apps {
		ws.add(app)
	}
	return ws
}

func (w *workingSet) add(app *appdomain.Application) {
	w.apps = append(w.apps, app)
	w.companies = append(w.companies, app.Company)
}
