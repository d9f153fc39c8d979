package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/models"
	"github.com/BananaScripts/insights-engine/pkg/nlp"
)

// stubExecutor records the components it received and returns fixed lines.
type stubExecutor struct {
	lines []string
	got   []models.QueryComponents
}

func (s *stubExecutor) Execute(_ context.Context, comps models.QueryComponents) []string {
	s.got = append(s.got, comps)
	return s.lines
}

func TestChatService_Answer(t *testing.T) {
	classifier := &stubClassifier{intent: models.IntentTotalRevenue, score: 0.84}
	executor := &stubExecutor{lines: []string{"O faturamento total é R$ 10,00."}}
	resolver := NewResolver(classifier, nlp.NewExtractor(), zap.NewNop())
	svc := NewChatService(resolver, executor, zap.NewNop())

	answer := svc.Answer(context.Background(), "Qual o faturamento total?")

	require.NotNil(t, answer)
	assert.Equal(t, []string{"O faturamento total é R$ 10,00."}, answer.Lines)
	assert.Equal(t, models.IntentTotalRevenue, answer.Intent)
	assert.InDelta(t, 0.84, answer.Confidence, 1e-9)

	require.Len(t, executor.got, 1)
	assert.Equal(t, models.IntentTotalRevenue, executor.got[0].Intent)
}

func TestChatService_UnknownQuestionStillAnswered(t *testing.T) {
	classifier := &stubClassifier{intent: models.IntentUnknown, score: 0.1}
	executor := &stubExecutor{lines: []string{"Desculpe, não entendi a sua pergunta. Poderia tentar reformular?"}}
	resolver := NewResolver(classifier, nlp.NewExtractor(), zap.NewNop())
	svc := NewChatService(resolver, executor, zap.NewNop())

	answer := svc.Answer(context.Background(), "asdf qwerty")

	require.NotNil(t, answer)
	assert.Equal(t, models.IntentUnknown, answer.Intent)
	assert.Len(t, answer.Lines, 1)
}
