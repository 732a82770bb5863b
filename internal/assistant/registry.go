package assistant

import (
	"sync"

	"github.com/google/uuid"

	"github.com/angelmondragon/homefinderz-backend/pkg/genai"
)

// Registry maps conversation IDs to live chat sessions. Entries survive until
// replaced or deleted; a missing entry means no assistant session is active
// for that conversation.
type Registry interface {
	Get(conversationID uuid.UUID) (*genai.Session, bool)
	Set(conversationID uuid.UUID, session *genai.Session)
	Delete(conversationID uuid.UUID)
}

// InMemoryRegistry is the process-owned Registry. Concurrent rebuilds of the
// same conversation race with last-write-wins semantics; rebuilds are
// idempotent given the persisted message history, so the loser's session is
// equivalent to the winner's.
type InMemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*genai.Session
}

// NewInMemoryRegistry constructs an empty session registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{sessions: make(map[uuid.UUID]*genai.Session)}
}

func (r *InMemoryRegistry) Get(conversationID uuid.UUID) (*genai.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[conversationID]
	return session, ok
}

func (r *InMemoryRegistry) Set(conversationID uuid.UUID, session *genai.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[conversationID] = session
}

func (r *InMemoryRegistry) Delete(conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, conversationID)
}
