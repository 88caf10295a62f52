package domain

import "fmt"

// Stage identifies the pipeline step a failure originated from.
type Stage string

const (
	StageAnalysis Stage = "analysis"
	StageLookup   Stage = "lookup"
	StageNotify   Stage = "notify"
)

// Kind classifies a failure within a stage. The webhook handler maps
// (Stage, Kind) pairs onto HTTP statuses and error codes; adapters are
// responsible for producing one of these for every remote condition.
type Kind string

const (
	// Precondition kinds, produced before any network call.
	KindInvalidEmail  Kind = "invalid_email"
	KindNotConfigured Kind = "not_configured"

	// Provider-reported kinds.
	KindNotFound          Kind = "not_found"
	KindMalformedResponse Kind = "malformed_response"
	KindEmptyResponse     Kind = "empty_response"
	KindModelNotFound     Kind = "model_not_found"
	KindProviderError     Kind = "provider_error"

	// Transport kinds, produced by the remote classifier.
	KindTimeout       Kind = "timeout"
	KindUnreachable   Kind = "unreachable"
	KindRequestFailed Kind = "request_failed"
)

// Failure is the structured, non-panicking failure value used for all
// cross-component error propagation. Message is always printable and never
// contains credentials or raw request bodies.
type Failure struct {
	Stage   Stage  `json:"stage"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func NewFailure(stage Stage, kind Kind, message string) *Failure {
	return &Failure{Stage: stage, Kind: kind, Message: message}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s/%s: %s", f.Stage, f.Kind, f.Message)
}
