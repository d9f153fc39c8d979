// Package handlers contains the HTTP endpoints of the service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

// maxQuestionBytes bounds the request body; questions are short sentences.
const maxQuestionBytes = 4 << 10

// ChatRequest is the inbound question payload.
type ChatRequest struct {
	Question string `json:"pergunta"`
}

// Answerer runs the question-to-answer pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) *models.ChatAnswer
}

// ChatHandler exposes the question pipeline over HTTP.
type ChatHandler struct {
	chat   Answerer
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat Answerer, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", h.Chat)
}

// Chat handles POST /chat requests. The body carries one question; the
// response always carries an answer, including the fixed fallback lines for
// questions the pipeline cannot serve.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxQuestionBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON with a 'pergunta' field")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "empty_question", "o campo 'pergunta' não pode ser vazio")
		return
	}

	answer := h.chat.Answer(r.Context(), req.Question)
	if err := WriteJSON(w, http.StatusOK, answer); err != nil {
		h.logger.Error("Failed to encode chat response", zap.Error(err))
	}
}
