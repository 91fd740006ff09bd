package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobdeck-backend/internal/application/usecase"
	authdomain "jobdeck-backend/internal/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncUsecase struct {
	mu     sync.Mutex
	synced []string
	done   chan string
}

func newFakeSyncUsecase() *fakeSyncUsecase {
	return &fakeSyncUsecase{done: make(chan string, 10)}
}

func (f *fakeSyncUsecase) SyncMailbox(ctx context.Context, userID string) (*usecase.SyncResult, error) {
	f.mu.Lock()
	f.synced = append(f.synced, userID)
	f.mu.Unlock()
	select {
	case f.done <- userID:
	default:
	}
	return &usecase.SyncResult{}, nil
}

func (f *fakeSyncUsecase) WatchMailbox(ctx context.Context, userID string) error { return nil }
func (f *fakeSyncUsecase) StopWatch(ctx context.Context, userID string) error    { return nil }

type stubUserRepo struct {
	granted []*authdomain.User
}

func (s *stubUserRepo) Create(user *authdomain.User) error                  { return nil }
func (s *stubUserRepo) FindByEmail(email string) (*authdomain.User, error)  { return nil, nil }
func (s *stubUserRepo) FindByID(id string) (*authdomain.User, error)        { return nil, nil }
func (s *stubUserRepo) Update(user *authdomain.User) error                  { return nil }
func (s *stubUserRepo) FindWithMailboxGrant() ([]*authdomain.User, error)   { return s.granted, nil }
func (s *stubUserRepo) SaveRefreshToken(t *authdomain.RefreshToken) error   { return nil }
func (s *stubUserRepo) FindRefreshToken(t string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (s *stubUserRepo) DeleteRefreshToken(token string) error        { return nil }
func (s *stubUserRepo) DeleteRefreshTokensByUser(userID string) error { return nil }

type stubFCMRepo struct{}

func (s *stubFCMRepo) SaveToken(userID, token, deviceInfo string) error { return nil }
func (s *stubFCMRepo) GetTokensByUserID(userID string) ([]authdomain.FCMToken, error) {
	return nil, nil
}
func (s *stubFCMRepo) DeleteToken(token string) error           { return nil }
func (s *stubFCMRepo) DeleteTokensByUserID(userID string) error { return nil }

func waitForSync(t *testing.T, f *fakeSyncUsecase) string {
	t.Helper()
	select {
	case userID := <-f.done:
		return userID
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync")
		return ""
	}
}

func TestScheduler_ProcessesEnqueuedUser(t *testing.T) {
	syncUc := newFakeSyncUsecase()
	s := NewSyncScheduler(&stubUserRepo{}, &stubFCMRepo{}, nil, syncUc, 0, 2)
	s.Start()
	defer s.Stop()

	require.True(t, s.EnqueueUser("user-1"))
	assert.Equal(t, "user-1", waitForSync(t, syncUc))
}

func TestScheduler_PeriodicLoopEnqueuesGrantedUsers(t *testing.T) {
	syncUc := newFakeSyncUsecase()
	repo := &stubUserRepo{granted: []*authdomain.User{{ID: "user-7"}}}
	s := NewSyncScheduler(repo, &stubFCMRepo{}, nil, syncUc, 10*time.Millisecond, 1)
	s.Start()
	defer s.Stop()

	assert.Equal(t, "user-7", waitForSync(t, syncUc))
}

func TestScheduler_EnqueueAfterStopDoesNotPanic(t *testing.T) {
	syncUc := newFakeSyncUsecase()
	s := NewSyncScheduler(&stubUserRepo{}, &stubFCMRepo{}, nil, syncUc, 0, 1)
	s.Start()
	s.Stop()

	// a push notification can still arrive during shutdown
	assert.NotPanics(t, func() { s.EnqueueUser("user-late") })
	assert.Empty(t, syncUc.synced)
}
