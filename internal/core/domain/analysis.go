package domain

import "encoding/json"

// DefaultAnalysisType is used when the client does not name one.
const DefaultAnalysisType = "general"

// Analysis is the outcome of forwarding a document to the completion API.
// Result holds the model's JSON output exactly as returned.
type Analysis struct {
	Filename     string
	AnalysisType string
	Result       json.RawMessage
}

// ChatMessage is one turn of a completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single chat-completion call.
type CompletionRequest struct {
	Messages    []ChatMessage
	Temperature float64
	JSONOutput  bool
}

// ProbeResult is the raw upstream answer to a connectivity probe.
type ProbeResult struct {
	Status int
	Body   string
}
