package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a conversation or message does not exist.
var ErrNotFound = errors.New("not found")

// Conversation is a chat session owning an ordered set of messages.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn in a conversation. Immutable once created.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	AudioPath      string    `json:"audio_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is the conversation/message persistence interface.
type Store interface {
	ListConversations() []Conversation
	GetConversation(id string) (*Conversation, error)
	CreateConversation(title string) *Conversation
	DeleteConversation(id string) bool
	ListMessages(conversationID string) []Message
	CreateMessage(conversationID, role, content, audioPath string) (*Message, error)
	DeleteMessage(id string) bool
	DeleteMessages(ids []string) bool
}

// MemoryStore keeps conversations and messages in process memory.
// Handlers run concurrently, so all access goes through the mutex.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	messages      map[string]*Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string]*Message),
	}
}

// ListConversations returns all conversations, newest-updated first.
func (s *MemoryStore) ListConversations() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// GetConversation returns the conversation with the given ID.
func (s *MemoryStore) GetConversation(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

// CreateConversation creates a new conversation with the given title.
func (s *MemoryStore) CreateConversation(title string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := &Conversation{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations[c.ID] = c
	copied := *c
	return &copied
}

// DeleteConversation removes a conversation and all of its messages.
// Returns false if the conversation does not exist.
func (s *MemoryStore) DeleteConversation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false
	}
	delete(s.conversations, id)
	for msgID, msg := range s.messages {
		if msg.ConversationID == id {
			delete(s.messages, msgID)
		}
	}
	return true
}

// ListMessages returns the messages of a conversation, oldest first.
func (s *MemoryStore) ListMessages(conversationID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0)
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CreateMessage appends a message to a conversation and bumps the
// conversation's UpdatedAt.
func (s *MemoryStore) CreateMessage(conversationID, role, content, audioPath string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now()
	m := &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		AudioPath:      audioPath,
		CreatedAt:      now,
	}
	s.messages[m.ID] = m
	conv.UpdatedAt = now

	copied := *m
	return &copied, nil
}

// DeleteMessage removes a single message. Returns false if it does not exist.
func (s *MemoryStore) DeleteMessage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMessageLocked(id)
}

// DeleteMessages removes a batch of messages. Returns true if every ID existed.
func (s *MemoryStore) DeleteMessages(ids []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := true
	for _, id := range ids {
		if !s.deleteMessageLocked(id) {
			all = false
		}
	}
	return all
}

func (s *MemoryStore) deleteMessageLocked(id string) bool {
	m, ok := s.messages[id]
	if !ok {
		return false
	}
	delete(s.messages, id)
	if conv, ok := s.conversations[m.ConversationID]; ok {
		conv.UpdatedAt = time.Now()
	}
	return true
}
