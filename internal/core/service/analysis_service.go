package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

const (
	analysisTemperature = 0.7
	probeMessage        = "Hi, this is a test message."
)

const analysisPrompt = `You are an expert medical analysis AI. Analyze the provided medical document
and extract key findings, potential red flags, risk levels, and recommendations. Format your
response as a JSON object with the following structure:
{
    "red_flags": [],
    "key_findings": [],
    "risk_stratification": [],
    "recommendations": [],
    "validation_notes": [],
    "confidence_metrics": {
        "diagnostic_confidence": number,
        "risk_levels": [],
        "abnormal_indicators": [],
        "measurement_accuracy": []
    }
}`

// AnalysisService forwards document text to the completion API and returns
// the model's JSON verbatim. The output shape is not checked against the prompt.
type AnalysisService struct {
	client ports.CompletionClient
	log    zerolog.Logger
}

func NewAnalysisService(client ports.CompletionClient, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{client: client, log: log}
}

func (s *AnalysisService) Analyze(ctx context.Context, filename string, content []byte, analysisType string) (*domain.Analysis, error) {
	if !utf8.Valid(content) {
		return nil, domain.Invalid("File must be a text document")
	}
	if analysisType == "" {
		analysisType = domain.DefaultAnalysisType
	}

	raw, err := s.client.Complete(ctx, domain.CompletionRequest{
		Messages: []domain.ChatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: string(content)},
		},
		Temperature: analysisTemperature,
		JSONOutput:  true,
	})
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("completion call failed")
		if errors.Is(err, domain.ErrUpstream) {
			return nil, err
		}
		return nil, domain.AnalysisFailed(err)
	}

	var result json.RawMessage
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("model returned malformed JSON")
		return nil, domain.AnalysisFailed(fmt.Errorf("parse analysis: %w", err))
	}

	return &domain.Analysis{
		Filename:     filename,
		AnalysisType: analysisType,
		Result:       result,
	}, nil
}

// ProbeUpstream sends a fixed greeting and reports the raw upstream answer.
func (s *AnalysisService) ProbeUpstream(ctx context.Context) (*domain.ProbeResult, error) {
	res, err := s.client.Probe(ctx, domain.CompletionRequest{
		Messages:    []domain.ChatMessage{{Role: "user", Content: probeMessage}},
		Temperature: analysisTemperature,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("completion API probe failed")
		return nil, &domain.DetailError{Kind: domain.ErrInternal, Detail: "API test failed: " + err.Error(), Err: err}
	}
	return res, nil
}
