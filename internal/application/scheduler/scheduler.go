package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"jobdeck-backend/internal/application/usecase"
	authrepo "jobdeck-backend/internal/auth/repository"
	"jobdeck-backend/pkg/fcm"
)

// SyncScheduler periodically syncs every connected mailbox. Runs are fanned
// out to a small worker pool so one slow mailbox does not stall the rest.
type SyncScheduler struct {
	userRepo    authrepo.UserRepository
	fcmRepo     authrepo.FCMTokenRepository
	fcmClient   *fcm.Client // nil when push notifications are not configured
	syncUsecase usecase.SyncUsecase

	interval    time.Duration
	workerCount int

	jobQueue chan string // user IDs
	stopChan chan struct{}
	workerWg sync.WaitGroup
	started  bool
	mu       sync.Mutex
}

// NewSyncScheduler creates a scheduler. interval <= 0 disables the periodic
// loop; EnqueueUser still works for push-triggered syncs.
func NewSyncScheduler(
	userRepo authrepo.UserRepository,
	fcmRepo authrepo.FCMTokenRepository,
	fcmClient *fcm.Client,
	syncUsecase usecase.SyncUsecase,
	interval time.Duration,
	workerCount int,
) *SyncScheduler {
	if workerCount <= 0 {
		workerCount = 3
	}
	return &SyncScheduler{
		userRepo:    userRepo,
		fcmRepo:     fcmRepo,
		fcmClient:   fcmClient,
		syncUsecase: syncUsecase,
		interval:    interval,
		workerCount: workerCount,
		jobQueue:    make(chan string, 100),
		stopChan:    make(chan struct{}),
	}
}

// Start launches the workers and, when an interval is set, the periodic loop
func (s *SyncScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.stopChan = make(chan struct{})

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	log.Printf("[SyncScheduler] Started %d workers", s.workerCount)

	if s.interval <= 0 {
		log.Println("[SyncScheduler] Periodic sync disabled")
		return
	}

	log.Printf("[SyncScheduler] Periodic sync every %s", s.interval)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueueAllUsers()
			case <-s.stopChan:
				log.Println("[SyncScheduler] Periodic loop stopped")
				return
			}
		}
	}()
}

// Stop ends the periodic loop and the workers. The job queue stays open so a
// late EnqueueUser from the push notification path cannot panic; its entries
// are simply no longer drained.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	close(s.stopChan)
	s.workerWg.Wait()
	s.started = false
	log.Println("[SyncScheduler] All workers stopped")
}

// EnqueueUser schedules one user's mailbox for syncing (non-blocking)
func (s *SyncScheduler) EnqueueUser(userID string) bool {
	select {
	case s.jobQueue <- userID:
		return true
	default:
		log.Printf("[SyncScheduler] Queue full, dropping sync for user %s", userID)
		return false
	}
}

func (s *SyncScheduler) enqueueAllUsers() {
	users, err := s.userRepo.FindWithMailboxGrant()
	if err != nil {
		log.Printf("[SyncScheduler] Error listing users: %v", err)
		return
	}
	for _, user := range users {
		s.EnqueueUser(user.ID)
	}
}

func (s *SyncScheduler) worker(id int) {
	defer s.workerWg.Done()

	for {
		select {
		case <-s.stopChan:
			log.Printf("[SyncScheduler] Worker %d stopped", id)
			return
		case userID := <-s.jobQueue:
			s.runSync(userID)
		}
	}
}

func (s *SyncScheduler) runSync(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.syncUsecase.SyncMailbox(ctx, userID)
	if err != nil {
		log.Printf("[SyncScheduler] Sync failed for user %s: %v", userID, err)
		return
	}

	if result.Processed > 0 {
		s.notifyUser(ctx, userID, result.Processed)
	}
}

// notifyUser pushes a summary notification to the user's devices after a run
// that recorded new interactions
func (s *SyncScheduler) notifyUser(ctx context.Context, userID string, processed int) {
	if s.fcmClient == nil {
		return
	}

	tokens, err := s.fcmRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[SyncScheduler] Error getting FCM tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	body := fmt.Sprintf("%d new application updates found in your inbox", processed)
	if processed == 1 {
		body = "1 new application update found in your inbox"
	}

	failedTokens, err := s.fcmClient.SendToDevices(ctx, tokenStrings, fcm.NotificationData{
		Title: "Job applications updated",
		Body:  body,
		Data: map[string]string{
			"type":         "sync_update",
			"processed":    fmt.Sprintf("%d", processed),
			"click_action": "/applications",
		},
	})
	if err != nil {
		log.Printf("[SyncScheduler] Error sending notification to user %s: %v", userID, err)
		return
	}

	// Stale tokens are pruned so the next run stops retrying them
	for _, token := range failedTokens {
		if err := s.fcmRepo.DeleteToken(token); err != nil {
			log.Printf("[SyncScheduler] Error deleting stale token: %v", err)
		}
	}
}
