package chat

import (
	"errors"
	"net/http"
	"testing"
)

func TestNotReadyErrorMapping(t *testing.T) {
	err := notReadyError{}
	if !IsNotReady(err) {
		t.Fatalf("IsNotReady should match")
	}
	if err.StatusCode() != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", err.StatusCode())
	}
	if IsGenerationFailure(err) {
		t.Fatalf("classification overlap")
	}
}

func TestGenerationErrorMapping(t *testing.T) {
	cause := errors.New("oom")
	err := generationError{cause: cause}
	if !IsGenerationFailure(err) {
		t.Fatalf("IsGenerationFailure should match")
	}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("status = %d", err.StatusCode())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not wrapped")
	}
	if err.Error() == cause.Error() {
		t.Fatalf("generic message should hide the cause")
	}
	if IsNotReady(err) {
		t.Fatalf("classification overlap")
	}
}
