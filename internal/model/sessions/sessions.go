package sessions

import (
	"sync"
	"time"
)

type Flow string

const (
	FlowExpense Flow = "expense"
	FlowIncome  Flow = "income"
	FlowLimit   Flow = "limit"
)

type Step string

const (
	StepName     Step = "name"
	StepSource   Step = "source"
	StepAmount   Step = "amount"
	StepCategory Step = "category"
)

// Session is the saved continuation of one wizard: which flow the user
// is in, which prompt is pending, and the answers collected so far.
// At most one session exists per user.
type Session struct {
	Flow      Flow
	Step      Step
	Name      string
	Amount    float64
	UpdatedAt time.Time
}

// Store keeps wizard sessions keyed by user id. The interface exists so
// a multi-instance deployment can back it with an external store; the
// bot itself only assumes these four operations.
type Store interface {
	Get(userID int64) (Session, bool)
	Put(userID int64, sess Session)
	Delete(userID int64)
	Expire(olderThan time.Time) map[int64]Session
}

type InMemStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewInMemStore() *InMemStore {
	return &InMemStore{sessions: make(map[int64]Session)}
}

func (s *InMemStore) Get(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Put stamps the session, so every answered prompt pushes the expiry
// window forward.
func (s *InMemStore) Put(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.UpdatedAt = time.Now()
	s.sessions[userID] = sess
}

func (s *InMemStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Expire removes every session not touched since olderThan and returns
// the removed sessions so the caller can notify their owners.
func (s *InMemStore) Expire(olderThan time.Time) map[int64]Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make(map[int64]Session)
	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(olderThan) {
			expired[userID] = sess
			delete(s.sessions, userID)
		}
	}
	return expired
}
