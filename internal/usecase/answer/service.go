// Package answer resolves free-text questions: first by TF-IDF retrieval over
// a local text corpus, then by a language model fallback when no corpus entry
// is close enough.
package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/metrics"
	"github.com/publilab/munbot/internal/tfidf"
)

// DefaultThreshold is the minimum cosine similarity for a corpus entry to be
// served directly instead of falling back to the model.
const DefaultThreshold = 0.2

// Source labels where an answer came from.
type Source string

const (
	// SourceDocument means the answer was retrieved from the local corpus.
	SourceDocument Source = "document"
	// SourceModel means the answer came from the language model fallback.
	SourceModel Source = "model"
)

// Result is an answered question with its provenance.
type Result struct {
	Text   string
	Source Source
	Score  float64 // corpus similarity; zero for model answers
}

// Service answers questions against an indexed corpus with a model fallback.
type Service struct {
	index     *tfidf.Index
	model     Model
	threshold float64
	logger    *zap.Logger
}

// New creates an answer service. A nil model disables the fallback.
func New(index *tfidf.Index, model Model, threshold float64, logger *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{index: index, model: model, threshold: threshold, logger: logger}
}

// Answer resolves one question.
func (s *Service) Answer(ctx context.Context, question string) (Result, error) {
	if match, ok := s.index.Best(question); ok && match.Score >= s.threshold {
		metrics.AnswerSourceTotal.WithLabelValues(string(SourceDocument)).Inc()
		s.logger.Debug("answer from corpus",
			zap.String("document", match.Document.ID),
			zap.Float64("score", match.Score),
		)
		return Result{Text: match.Document.Text, Source: SourceDocument, Score: match.Score}, nil
	}

	if s.model == nil {
		metrics.AnswerSourceTotal.WithLabelValues("none").Inc()
		return Result{}, fmt.Errorf("no corpus match and no model configured: %w", domain.ErrNoAnswer)
	}

	text, err := s.model.Complete(ctx, question)
	if err != nil {
		metrics.AnswerSourceTotal.WithLabelValues("none").Inc()
		return Result{}, fmt.Errorf("model fallback: %w", err)
	}

	metrics.AnswerSourceTotal.WithLabelValues(string(SourceModel)).Inc()
	return Result{Text: text, Source: SourceModel}, nil
}
