package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

// QueryExecutor runs resolved components against the store and renders the
// answer lines.
type QueryExecutor interface {
	Execute(ctx context.Context, comps models.QueryComponents) []string
}

// ChatService runs the full question-to-answer pipeline. It is the single
// entry point the transport layer talks to.
type ChatService struct {
	resolver *Resolver
	executor QueryExecutor
	logger   *zap.Logger
}

// NewChatService creates the pipeline facade.
func NewChatService(resolver *Resolver, executor QueryExecutor, logger *zap.Logger) *ChatService {
	return &ChatService{
		resolver: resolver,
		executor: executor,
		logger:   logger.Named("chat"),
	}
}

// Answer resolves and executes one question. Every question gets an answer;
// failures surface as fixed fallback lines, never as an error.
func (s *ChatService) Answer(ctx context.Context, question string) *models.ChatAnswer {
	questionID := uuid.NewString()
	logger := s.logger.With(zap.String("question_id", questionID))

	comps := s.resolver.Resolve(ctx, question)
	lines := s.executor.Execute(ctx, comps)

	logger.Info("question answered",
		zap.String("intent", string(comps.Intent)),
		zap.Float64("confidence", comps.Confidence),
		zap.Int("lines", len(lines)))

	return &models.ChatAnswer{
		Lines:      lines,
		Intent:     comps.Intent,
		Confidence: comps.Confidence,
	}
}
