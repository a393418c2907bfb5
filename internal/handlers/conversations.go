package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/store"
)

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type ConversationsResponse struct {
	Conversations []store.Conversation `json:"conversations"`
}

type MessagesResponse struct {
	Messages []store.Message `json:"messages"`
}

type DeleteMessagesRequest struct {
	IDs []string `json:"ids"`
}

// GetConversationsHandler returns all conversations, newest-updated first.
func (h *Handlers) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, ConversationsResponse{
		Conversations: h.store.ListConversations(),
	})
}

// CreateConversationHandler creates an empty conversation.
func (h *Handlers) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Title == "" {
		req.Title = "New conversation"
	}

	conv := h.store.CreateConversation(req.Title)
	logger.Log.WithField("conversation_id", conv.ID).Info("Conversation created")
	h.sendJSON(w, http.StatusCreated, conv)
}

// GetConversationHandler returns a single conversation.
func (h *Handlers) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	conv, err := h.store.GetConversation(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusNotFound, "Conversation not found", err)
		return
	}
	h.sendJSON(w, http.StatusOK, conv)
}

// DeleteConversationHandler deletes a conversation and its messages.
func (h *Handlers) DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	convID := r.PathValue("id")
	if !h.store.DeleteConversation(convID) {
		h.sendError(w, http.StatusNotFound, "Conversation not found", nil)
		return
	}

	logger.Log.WithField("conversation_id", convID).Info("Conversation deleted")
	h.sendJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Conversation deleted successfully",
	})
}

// GetConversationMessagesHandler returns the messages of a conversation,
// oldest first.
func (h *Handlers) GetConversationMessagesHandler(w http.ResponseWriter, r *http.Request) {
	convID := r.PathValue("id")
	if _, err := h.store.GetConversation(convID); err != nil {
		h.sendError(w, http.StatusNotFound, "Conversation not found", err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessagesResponse{
		Messages: h.store.ListMessages(convID),
	})
}

// DeleteMessageHandler deletes a single message.
func (h *Handlers) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	msgID := r.PathValue("id")
	if !h.store.DeleteMessage(msgID) {
		h.sendError(w, http.StatusNotFound, "Message not found", nil)
		return
	}
	h.sendJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Message deleted successfully",
	})
}

// DeleteMessagesHandler deletes a batch of messages.
func (h *Handlers) DeleteMessagesHandler(w http.ResponseWriter, r *http.Request) {
	var req DeleteMessagesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		h.sendError(w, http.StatusBadRequest, "No message IDs provided", nil)
		return
	}

	all := h.store.DeleteMessages(req.IDs)
	logger.Log.WithFields(logrus.Fields{"count": len(req.IDs), "all_found": all}).Info("Messages deleted")
	h.sendJSON(w, http.StatusOK, DeleteResponse{
		Success: all,
		Message: "Messages deleted",
	})
}
