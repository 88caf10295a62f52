package dto

// HealthResponse is the body of GET /health. It is not wrapped in the
// success envelope; monitoring systems consume it directly.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  HealthServices `json:"services"`
}

type HealthServices struct {
	Inference InferenceHealth `json:"inference"`
	Slack     SlackHealth     `json:"slack"`
}

type InferenceHealth struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Model  string `json:"model,omitempty"`
	Error  string `json:"error,omitempty"`
}

type SlackHealth struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Ready     bool   `json:"ready"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
