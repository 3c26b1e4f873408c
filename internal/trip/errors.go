package trip

import "fmt"

// ValidationError reports a malformed or missing request field. It is
// surfaced to the user before any outbound call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// ConfigurationError reports a missing or unusable credential at
// startup. It is fatal before any request is accepted.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Key, e.Reason)
}

// UpstreamError wraps a failure from the language-model or search API.
// It aborts the whole sequence; there is no partial plan and no retry.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: could not generate plan: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
