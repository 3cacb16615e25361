package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cppla/folio/models"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// Session is the in-memory state of one page session. Records are append-only.
type Session struct {
	ID string

	mu              sync.Mutex
	expiresAt       time.Time
	pending         bool
	feedback        []models.Feedback // newest first
	contacts        []models.ContactMessage
	projectVotes    map[int]int
	projectFeedback map[int][]string
	ideaVotes       map[int]int
}

func newSession(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:              id,
		expiresAt:       expiresAt,
		projectVotes:    map[int]int{},
		projectFeedback: map[int][]string{},
		ideaVotes:       map[int]int{},
	}
}

// BeginSubmission marks an evaluation as pending. It returns false when one is already in flight.
func (s *Session) BeginSubmission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// EndSubmission clears the pending flag.
func (s *Session) EndSubmission() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// AppendFeedback puts rec at the head of the list.
func (s *Session) AppendFeedback(rec models.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append([]models.Feedback{rec}, s.feedback...)
}

// Feedback returns a copy of the list, newest first.
func (s *Session) Feedback() []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Feedback(nil), s.feedback...)
}

// MarkHelpful bumps the helpful count of the record with the given id by one.
// Repeated calls keep counting.
func (s *Session) MarkHelpful(id string) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feedback {
		if s.feedback[i].ID == id {
			s.feedback[i].HelpfulCount++
			return s.feedback[i], nil
		}
	}
	return models.Feedback{}, ErrFeedbackNotFound
}

// AppendContact records an acknowledged contact message.
func (s *Session) AppendContact(msg models.ContactMessage) {
	s.mu.Lock()
	s.contacts = append(s.contacts, msg)
	s.mu.Unlock()
}

// Contacts returns a copy of the acknowledged contact messages in submission order.
func (s *Session) Contacts() []models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ContactMessage(nil), s.contacts...)
}

// VoteProject adds one vote to the project at index and returns the session's extra votes.
func (s *Session) VoteProject(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectVotes[index]++
	return s.projectVotes[index]
}

// AddProjectFeedback appends a comment to the project at index.
func (s *Session) AddProjectFeedback(index int, text string) {
	s.mu.Lock()
	s.projectFeedback[index] = append(s.projectFeedback[index], text)
	s.mu.Unlock()
}

// VoteIdea adds one vote to the idea at index and returns the session's extra votes.
func (s *Session) VoteIdea(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ideaVotes[index]++
	return s.ideaVotes[index]
}

// ApplyProject overlays this session's votes and comments onto a static project.
func (s *Session) ApplyProject(index int, p models.Project) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Votes += s.projectVotes[index]
	p.Feedback = append(append([]string(nil), p.Feedback...), s.projectFeedback[index]...)
	return p
}

// ApplyIdea overlays this session's votes onto a static idea.
func (s *Session) ApplyIdea(index int, idea models.Idea) models.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	idea.Votes += s.ideaVotes[index]
	return idea
}

// SessionStore owns every live session. Sessions expire after ttl without access.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates a store; ttl <= 0 falls back to one hour.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{ttl: ttl, now: time.Now, sessions: map[string]*Session{}}
}

// Resolve returns the live session for id, or a new one when id is empty,
// unknown or expired. created reports whether a new session was made.
func (st *SessionStore) Resolve(id string) (sess *Session, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			s.mu.Lock()
			expired := now.After(s.expiresAt)
			if !expired {
				s.expiresAt = now.Add(st.ttl)
			}
			s.mu.Unlock()
			if !expired {
				return s, false
			}
			delete(st.sessions, id)
		}
	}

	s := newSession(uuid.NewString(), now.Add(st.ttl))
	st.sessions[s.ID] = s
	return s, true
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	n := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := now.After(s.expiresAt)
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// ContextSessionKey is the gin context key holding the resolved session id.
const ContextSessionKey = "session_id"
