package store

import (
	"testing"
)

func TestMemoryStore_ConversationLifecycle(t *testing.T) {
	s := NewMemoryStore()

	conv := s.CreateConversation("First chat")
	if conv.ID == "" {
		t.Fatal("CreateConversation() returned empty ID")
	}
	if conv.Title != "First chat" {
		t.Errorf("Title = %q, want %q", conv.Title, "First chat")
	}
	if !conv.CreatedAt.Equal(conv.UpdatedAt) {
		t.Error("new conversation should have CreatedAt == UpdatedAt")
	}

	got, err := s.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("GetConversation().ID = %q, want %q", got.ID, conv.ID)
	}

	if _, err := s.GetConversation("missing"); err != ErrNotFound {
		t.Errorf("GetConversation(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ListConversationsNewestUpdatedFirst(t *testing.T) {
	s := NewMemoryStore()

	first := s.CreateConversation("first")
	second := s.CreateConversation("second")

	// Touch the first conversation so it becomes the most recently updated.
	if _, err := s.CreateMessage(first.ID, "user", "hello", ""); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	list := s.ListConversations()
	if len(list) != 2 {
		t.Fatalf("ListConversations() len = %d, want 2", len(list))
	}
	if list[0].ID != first.ID {
		t.Errorf("first listed = %q, want most recently updated %q", list[0].ID, first.ID)
	}
	if list[1].ID != second.ID {
		t.Errorf("second listed = %q, want %q", list[1].ID, second.ID)
	}
}

func TestMemoryStore_CreateMessageBumpsUpdatedAt(t *testing.T) {
	s := NewMemoryStore()
	conv := s.CreateConversation("chat")

	msg, err := s.CreateMessage(conv.ID, "user", "hello", "")
	if err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	got, err := s.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if got.UpdatedAt.Before(msg.CreatedAt) {
		t.Errorf("conversation UpdatedAt %v is before message CreatedAt %v", got.UpdatedAt, msg.CreatedAt)
	}

	if _, err := s.CreateMessage("missing", "user", "hello", ""); err != ErrNotFound {
		t.Errorf("CreateMessage(missing conversation) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ListMessagesOldestFirst(t *testing.T) {
	s := NewMemoryStore()
	conv := s.CreateConversation("chat")

	for _, content := range []string{"one", "two", "three"} {
		if _, err := s.CreateMessage(conv.ID, "user", content, ""); err != nil {
			t.Fatalf("CreateMessage(%q) error = %v", content, err)
		}
	}

	messages := s.ListMessages(conv.ID)
	if len(messages) != 3 {
		t.Fatalf("ListMessages() len = %d, want 3", len(messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if messages[i].Content != want {
			t.Errorf("messages[%d].Content = %q, want %q", i, messages[i].Content, want)
		}
	}
}

func TestMemoryStore_DeleteConversationCascades(t *testing.T) {
	s := NewMemoryStore()
	conv := s.CreateConversation("doomed")
	other := s.CreateConversation("survivor")

	for i := 0; i < 3; i++ {
		if _, err := s.CreateMessage(conv.ID, "user", "msg", ""); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}
	if _, err := s.CreateMessage(other.ID, "user", "kept", ""); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	if !s.DeleteConversation(conv.ID) {
		t.Fatal("DeleteConversation() = false, want true")
	}

	if msgs := s.ListMessages(conv.ID); len(msgs) != 0 {
		t.Errorf("ListMessages(deleted) len = %d, want 0", len(msgs))
	}
	for _, c := range s.ListConversations() {
		if c.ID == conv.ID {
			t.Error("deleted conversation still listed")
		}
	}
	if msgs := s.ListMessages(other.ID); len(msgs) != 1 {
		t.Errorf("other conversation messages = %d, want 1", len(msgs))
	}

	if s.DeleteConversation(conv.ID) {
		t.Error("DeleteConversation(already deleted) = true, want false")
	}
}

func TestMemoryStore_DeleteMessages(t *testing.T) {
	s := NewMemoryStore()
	conv := s.CreateConversation("chat")

	m1, _ := s.CreateMessage(conv.ID, "user", "one", "")
	m2, _ := s.CreateMessage(conv.ID, "assistant", "two", "")

	if !s.DeleteMessage(m1.ID) {
		t.Error("DeleteMessage() = false, want true")
	}
	if s.DeleteMessage(m1.ID) {
		t.Error("DeleteMessage(gone) = true, want false")
	}

	if all := s.DeleteMessages([]string{m2.ID, "missing"}); all {
		t.Error("DeleteMessages() with a missing ID = true, want false")
	}
	if msgs := s.ListMessages(conv.ID); len(msgs) != 0 {
		t.Errorf("ListMessages() len = %d, want 0", len(msgs))
	}
}
