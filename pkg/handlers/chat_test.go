package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

type stubAnswerer struct {
	answer    *models.ChatAnswer
	questions []string
}

func (s *stubAnswerer) Answer(_ context.Context, question string) *models.ChatAnswer {
	s.questions = append(s.questions, question)
	return s.answer
}

func newChatServer(t *testing.T, chat Answerer) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewChatHandler(chat, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestChat_Success(t *testing.T) {
	chat := &stubAnswerer{answer: &models.ChatAnswer{
		Lines:      []string{"O faturamento total é R$ 10,00."},
		Intent:     models.IntentTotalRevenue,
		Confidence: 0.84,
	}}
	mux := newChatServer(t, chat)

	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"pergunta": "Qual o faturamento total?"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.ChatAnswer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"O faturamento total é R$ 10,00."}, got.Lines)
	assert.Equal(t, models.IntentTotalRevenue, got.Intent)
	assert.InDelta(t, 0.84, got.Confidence, 1e-9)

	require.Len(t, chat.questions, 1)
	assert.Equal(t, "Qual o faturamento total?", chat.questions[0])
}

func TestChat_EmptyQuestion(t *testing.T) {
	chat := &stubAnswerer{}
	mux := newChatServer(t, chat)

	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"pergunta": "   "}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, chat.questions, "pipeline is never invoked for empty questions")
}

func TestChat_MalformedBody(t *testing.T) {
	chat := &stubAnswerer{}
	mux := newChatServer(t, chat)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_request", body["error"])
}

func TestChat_MethodNotAllowed(t *testing.T) {
	mux := newChatServer(t, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
