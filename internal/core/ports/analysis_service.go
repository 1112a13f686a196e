package ports

import (
	"context"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

type AnalysisService interface {
	Analyze(ctx context.Context, filename string, content []byte, analysisType string) (*domain.Analysis, error)
	ProbeUpstream(ctx context.Context) (*domain.ProbeResult, error)
}
