package domain

import "strings"

// BuildFailureEvent is the validated inbound webhook event. Constructed once
// per request from the raw body and never persisted.
type BuildFailureEvent struct {
	CommitSHA   string
	AuthorEmail string
	Repo        string
	Logs        string
	Error       string
}

// MissingFields returns the names of required fields that are empty after
// trimming whitespace, in stable order.
func (e BuildFailureEvent) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(e.CommitSHA) == "" {
		missing = append(missing, "commit_sha")
	}
	if strings.TrimSpace(e.AuthorEmail) == "" {
		missing = append(missing, "author_email")
	}
	if strings.TrimSpace(e.Repo) == "" {
		missing = append(missing, "repo")
	}
	return missing
}

// ShortSHA returns the first 7 characters of the commit SHA, or the whole
// SHA when it is shorter than that.
func (e BuildFailureEvent) ShortSHA() string {
	if len(e.CommitSHA) >= 7 {
		return e.CommitSHA[:7]
	}
	return e.CommitSHA
}

// ValidEmail reports whether the author email passes the basic format check.
// Anything stricter is the directory provider's call.
func ValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}
