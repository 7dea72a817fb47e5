// Package suggest asks a text-generation model for pricing advice about a product.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/endracle/priceninja/internal/metrics"
	"github.com/endracle/priceninja/internal/pricing"
)

const failurePrefix = "Failed to get AI suggestion. "

var (
	// ErrNotConfigured is returned when no text-generation backend is available.
	ErrNotConfigured = errors.New("suggestion service is not configured")

	// ErrEmptySuggestion is returned when the model reply carries no text.
	ErrEmptySuggestion = errors.New("suggestion service returned an empty response")
)

// Generator sends a prompt to a text-generation model and returns its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled returns a Generator that always fails with reason.
func Disabled(reason error) Generator {
	if reason == nil {
		reason = ErrNotConfigured
	}
	return GeneratorFunc(func(context.Context, string) (string, error) {
		return "", reason
	})
}

// Outcome is the tagged result of a suggestion request.
type Outcome struct {
	Success    bool   `json:"success"`
	Suggestion string `json:"suggestion,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Failure builds the failed Outcome for err.
func Failure(err error) Outcome {
	return Outcome{Error: failurePrefix + err.Error()}
}

// Requester turns pricing inputs into a single suggestion request.
type Requester struct {
	gen    Generator
	logger *zap.Logger
}

// NewRequester creates a Requester backed by gen.
func NewRequester(gen Generator, logger *zap.Logger) *Requester {
	if gen == nil {
		gen = Disabled(ErrNotConfigured)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requester{gen: gen, logger: logger}
}

// Request performs one round trip to the text-generation model. Failures are
// reported through the returned Outcome and never retried.
func (r *Requester) Request(ctx context.Context, in pricing.Inputs) (out Outcome) {
	requestID := uuid.NewString()
	log := r.logger.With(zap.String("suggestion_id", requestID))
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("suggestion generator panicked: %v", p)
			metrics.RecordSuggestion(time.Since(start), err)
			log.Error("AI suggestion failed", zap.Error(err))
			out = Failure(err)
		}
	}()

	text, err := r.generate(ctx, in)
	metrics.RecordSuggestion(time.Since(start), err)
	if err != nil {
		log.Error("AI suggestion failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return Failure(err)
	}

	log.Info("AI suggestion received", zap.Int("chars", len(text)), zap.Duration("elapsed", time.Since(start)))
	return Outcome{Success: true, Suggestion: text}
}

func (r *Requester) generate(ctx context.Context, in pricing.Inputs) (string, error) {
	prompt, err := BuildPrompt(in)
	if err != nil {
		return "", err
	}

	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySuggestion
	}
	return text, nil
}
