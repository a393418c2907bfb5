package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/service/llm"
	"voice-assistant/internal/store"
)

// ProcessRequest contains the parameters for one assistant turn.
type ProcessRequest struct {
	Utterance      string
	ConversationID string
	ImageBase64    string
}

// ProcessResult is the outcome of one assistant turn.
type ProcessResult struct {
	Response       string
	Action         llm.Action
	Data           map[string]any
	ConversationID string
	MessageID      string
}

// Service handles the business logic for assistant turns: persist the user
// message, call the model, recover a structured reply, dispatch the action,
// persist the assistant message.
type Service struct {
	store    store.Store
	provider llm.Provider
	router   *Router
}

// NewService creates an assistant service.
func NewService(st store.Store, provider llm.Provider, router *Router) *Service {
	return &Service{store: st, provider: provider, router: router}
}

// Process runs one assistant turn. The LLM call is terminal on failure; the
// enrichment dispatch is not.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	conversation, err := s.getOrCreateConversation(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create conversation: %w", err)
	}

	// History is captured before the current turn is persisted; the
	// utterance goes to the model separately.
	history := s.history(conversation.ID)

	if _, err := s.store.CreateMessage(conversation.ID, "user", req.Utterance, ""); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversation.ID,
		"history_count":   len(history),
	}).Debug("Prepared for LLM call")

	start := time.Now()
	raw, err := s.provider.Complete(ctx, req.Utterance, history, req.ImageBase64)
	metrics.LLMLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("LLM error: %w", err)
	}

	reply := llm.ParseReply(raw)
	reply = s.router.Dispatch(ctx, reply, req.Utterance)

	msg, err := s.store.CreateMessage(conversation.ID, "assistant", reply.Message, "")
	if err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &ProcessResult{
		Response:       reply.Message,
		Action:         reply.Action,
		Data:           reply.Data,
		ConversationID: conversation.ID,
		MessageID:      msg.ID,
	}, nil
}

// Summarize asks the model for a summary of the given document text.
func (s *Service) Summarize(ctx context.Context, document string) (string, error) {
	prompt := "Summarize the following document concisely:\n\n" + document
	return s.oneShot(ctx, prompt, "")
}

// Analyze asks the model a question about the given document text.
func (s *Service) Analyze(ctx context.Context, document, question string) (string, error) {
	prompt := fmt.Sprintf("Answer the question about the following document.\n\nQuestion: %s\n\nDocument:\n%s", question, document)
	return s.oneShot(ctx, prompt, "")
}

// AnalyzeImage asks the model to describe or answer a prompt about an image.
func (s *Service) AnalyzeImage(ctx context.Context, imageBase64, prompt string) (string, error) {
	if prompt == "" {
		prompt = "Describe this image."
	}
	return s.oneShot(ctx, prompt, imageBase64)
}

// oneShot runs a single stateless turn and returns only the conversational
// message.
func (s *Service) oneShot(ctx context.Context, prompt, imageBase64 string) (string, error) {
	raw, err := s.provider.Complete(ctx, prompt, nil, imageBase64)
	if err != nil {
		return "", fmt.Errorf("LLM error: %w", err)
	}
	return llm.ParseReply(raw).Message, nil
}

// getOrCreateConversation retrieves an existing conversation or creates a
// new one titled with the first utterance.
func (s *Service) getOrCreateConversation(req ProcessRequest) (*store.Conversation, error) {
	if req.ConversationID != "" {
		return s.store.GetConversation(req.ConversationID)
	}

	title := req.Utterance
	runes := []rune(title)
	if len(runes) > 100 {
		title = string(runes[:100])
	}
	return s.store.CreateConversation(title), nil
}

// history converts the stored conversation into role-tagged model turns.
func (s *Service) history(conversationID string) []llm.Message {
	messages := s.store.ListMessages(conversationID)
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history
}
