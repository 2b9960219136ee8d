package chat

import "net/http"

// notReadyError signals that the model is still initializing (503 mapping).
// Retryable by the caller after a delay.
type notReadyError struct{}

func (notReadyError) Error() string {
	return "Model is still initializing. Please try again in a moment."
}

func (notReadyError) StatusCode() int { return http.StatusServiceUnavailable }

// IsNotReady reports whether err indicates the model has not loaded yet.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// generationError wraps an inference failure. The cause is kept for
// operator-side logging only; Error() deliberately returns a generic message
// so internal detail never leaks to the caller.
type generationError struct{ cause error }

func (generationError) Error() string {
	return "An error occurred while generating the response."
}

func (generationError) StatusCode() int { return http.StatusInternalServerError }

func (e generationError) Unwrap() error { return e.cause }

// IsGenerationFailure reports whether err indicates a failed inference call.
func IsGenerationFailure(err error) bool {
	_, ok := err.(generationError)
	return ok
}
