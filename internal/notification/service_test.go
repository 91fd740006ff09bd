package notification

import (
	"testing"

	authdomain "jobdeck-backend/internal/auth/domain"

	"cloud.google.com/go/pubsub"
	"github.com/stretchr/testify/assert"
)

type stubUserRepo struct {
	user *authdomain.User
}

func (s *stubUserRepo) Create(*authdomain.User) error { return nil }
func (s *stubUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserRepo) FindByID(string) (*authdomain.User, error)          { return nil, nil }
func (s *stubUserRepo) Update(*authdomain.User) error                      { return nil }
func (s *stubUserRepo) FindWithMailboxGrant() ([]*authdomain.User, error)  { return nil, nil }
func (s *stubUserRepo) SaveRefreshToken(*authdomain.RefreshToken) error    { return nil }
func (s *stubUserRepo) FindRefreshToken(string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (s *stubUserRepo) DeleteRefreshToken(string) error        { return nil }
func (s *stubUserRepo) DeleteRefreshTokensByUser(string) error { return nil }

type stubEnqueuer struct {
	enqueued []string
}

func (s *stubEnqueuer) EnqueueUser(userID string) bool {
	s.enqueued = append(s.enqueued, userID)
	return true
}

func newTestService(repo *stubUserRepo, enq *stubEnqueuer) *Service {
	return &Service{
		userRepo:      repo,
		enqueuer:      enq,
		lastHistoryID: make(map[string]uint64),
	}
}

func TestHandleMessage_EnqueuesKnownUser(t *testing.T) {
	repo := &stubUserRepo{user: &authdomain.User{ID: "user-1", Email: "me@example.com"}}
	enq := &stubEnqueuer{}
	svc := newTestService(repo, enq)

	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"me@example.com","historyId":42}`)})

	assert.Equal(t, []string{"user-1"}, enq.enqueued)
}

func TestHandleMessage_UnknownUserIgnored(t *testing.T) {
	repo := &stubUserRepo{}
	enq := &stubEnqueuer{}
	svc := newTestService(repo, enq)

	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"ghost@example.com","historyId":1}`)})

	assert.Empty(t, enq.enqueued)
}

func TestHandleMessage_DuplicateHistoryIDDropped(t *testing.T) {
	repo := &stubUserRepo{user: &authdomain.User{ID: "user-1", Email: "me@example.com"}}
	enq := &stubEnqueuer{}
	svc := newTestService(repo, enq)

	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"me@example.com","historyId":42}`)})
	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"me@example.com","historyId":42}`)})
	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"me@example.com","historyId":41}`)})
	svc.handleMessage(&pubsub.Message{Data: []byte(`{"emailAddress":"me@example.com","historyId":43}`)})

	assert.Equal(t, []string{"user-1", "user-1"}, enq.enqueued)
}

func TestHandleMessage_MalformedPayloadIgnored(t *testing.T) {
	repo := &stubUserRepo{}
	enq := &stubEnqueuer{}
	svc := newTestService(repo, enq)

	svc.handleMessage(&pubsub.Message{Data: []byte("not json")})

	assert.Empty(t, enq.enqueued)
}
