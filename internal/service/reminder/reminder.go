package reminder

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"voice-assistant/pkg/extract"
)

// ErrNotFound is returned when a reminder does not exist.
var ErrNotFound = errors.New("reminder not found")

// Reminder is a scheduled task with a due time and priority.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest carries the fields for an explicit reminder creation.
type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
}

// Service keeps reminders in process memory.
type Service struct {
	mu        sync.RWMutex
	reminders map[string]*Reminder
}

// NewService creates an empty reminder service.
func NewService() *Service {
	return &Service{reminders: make(map[string]*Reminder)}
}

// Create stores a reminder from an explicit structured request. Unknown
// priorities are coerced to medium; a zero due time defaults to one hour out.
func (s *Service) Create(req CreateRequest) *Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	r := &Reminder{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		Priority:    normalizePriority(req.Priority),
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if r.Title == "" {
		r.Title = "Reminder"
	}
	if r.DueAt.IsZero() {
		r.DueAt = now.Add(time.Hour)
	}
	s.reminders[r.ID] = r
	copied := *r
	return &copied
}

// CreateFromText extracts a reminder from natural language and stores it.
// Returns nil when nothing could be extracted.
func (s *Service) CreateFromText(text string) *Reminder {
	parsed := extract.ExtractReminder(text, time.Now())
	if parsed == nil {
		return nil
	}
	return s.Create(CreateRequest{
		Title:    parsed.Title,
		DueAt:    parsed.DueAt,
		Priority: parsed.Priority,
	})
}

// List returns all reminders, soonest due first.
func (s *Service) List() []Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

// Upcoming returns incomplete reminders due within the given window,
// soonest first.
func (s *Service) Upcoming(window time.Duration) []Reminder {
	cutoff := time.Now().Add(window)

	out := make([]Reminder, 0)
	for _, r := range s.List() {
		if !r.Completed && r.DueAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Complete marks a reminder done.
func (s *Service) Complete(id string) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Completed = true
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

// Delete removes a reminder. Kept as a capability; not wired to a route.
func (s *Service) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return false
	}
	delete(s.reminders, id)
	return true
}

func normalizePriority(p string) string {
	switch p {
	case "low", "medium", "high":
		return p
	default:
		return "medium"
	}
}
