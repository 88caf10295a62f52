package dto

// BuildFailureRequest is the inbound webhook body. logs and error may be
// empty; the other fields are required after trimming.
type BuildFailureRequest struct {
	CommitSHA   string `json:"commit_sha"`
	AuthorEmail string `json:"author_email"`
	Repo        string `json:"repo"`
	Logs        string `json:"logs"`
	Error       string `json:"error"`
}

// BuildFailureResponse is the data section of the success envelope.
type BuildFailureResponse struct {
	RequestID       string `json:"request_id"`
	Repo            string `json:"repo"`
	CommitSHA       string `json:"commit_sha"`
	SlackUserID     string `json:"slack_user_id"`
	AnalysisPreview string `json:"analysis_preview"`
}
