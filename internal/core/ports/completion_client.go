package ports

import (
	"context"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

// CompletionClient talks to the external chat-completion API.
type CompletionClient interface {
	// Complete returns the content of the first choice's message.
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
	// Probe sends req and returns the upstream status and body without interpreting them.
	Probe(ctx context.Context, req domain.CompletionRequest) (*domain.ProbeResult, error)
}
