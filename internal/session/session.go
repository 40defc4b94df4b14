// Package session provides host-side session management for the dialogue
// engine: it owns one ConversationContext per session and routes incoming
// utterances to the engine sequentially per session.
//
// The engine itself is stateless between calls, so the only locking
// discipline required is the one enforced here: a session's context is
// touched by at most one in-flight Respond call at a time, while distinct
// sessions proceed in parallel.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/BTreeMap/DialogPipe/internal/engine"
	"github.com/BTreeMap/DialogPipe/internal/models"
)

// Session is one active conversation.
type Session struct {
	ID      string
	Context *models.ConversationContext
	// mu serializes Respond calls for this session.
	mu sync.Mutex
}

// Manager maps session IDs to their conversations.
type Manager struct {
	engine *engine.Engine
	// mu protects concurrent access to the sessions map
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager around a constructed engine.
func NewManager(eng *engine.Engine) *Manager {
	return &Manager{
		engine:   eng,
		sessions: make(map[string]*Session),
	}
}

// Open starts a new session resting in the engine's default state.
func (m *Manager) Open() *Session {
	s := &Session{
		ID:      uuid.NewString(),
		Context: models.NewConversationContext(m.engine.DefaultState()),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	slog.Info("Session opened", "session", s.ID)
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Respond routes one utterance to the session's conversation and returns
// the engine's response. Calls for the same session are serialized.
func (m *Manager) Respond(id, utterance string) (string, error) {
	s, ok := m.Get(id)
	if !ok {
		slog.Error("Respond for unknown session", "session", id)
		return "", fmt.Errorf("unknown session %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return m.engine.Respond(s.Context, utterance)
}

// Reset returns a session to a fresh conversation. Slots are stale once a
// conversation is back in the default state; clearing them is this
// collaborator's job, not the engine's.
func (m *Manager) Reset(id string) error {
	s, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("unknown session %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Context = models.NewConversationContext(m.engine.DefaultState())
	slog.Debug("Session reset", "session", id)
	return nil
}

// Close ends a session and discards its conversation state.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	slog.Info("Session closed", "session", id)
}
