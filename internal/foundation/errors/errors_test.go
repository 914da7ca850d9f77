package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docnav.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "docnav.yaml" {
			t.Errorf("expected context file=docnav.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading page: %w", RetrievalError("document retrieval failed").
			WithContext("status", 404).
			Build())

		if !IsClassified(err) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryRetrieval) {
			t.Error("expected retrieval category")
		}
		classified, _ := AsClassified(err)
		if status, ok := classified.Context().GetInt("status"); !ok || status != 404 {
			t.Errorf("expected status 404, got %v", status)
		}
		if !classified.CanRetry() {
			t.Error("expected retrieval error to be retryable")
		}
	})

	t.Run("Decode errors degrade", func(t *testing.T) {
		err := DecodeError("malformed payload").Build()
		if err.IsFatal() {
			t.Error("decode errors must not be fatal")
		}
		if GetSeverity(err) != SeverityWarning {
			t.Errorf("expected warning severity, got %s", GetSeverity(err))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection reset")
	err := WrapError(originalErr, CategoryRetrieval, "fetch failed").
		Warning().
		Retryable().
		WithContext("path", "docs/a.md").
		Build()

	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if err.RetryStrategy() != RetryBackoff {
		t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
	}
	if got := err.Error(); got != "[retrieval:warning] fetch failed: connection reset" {
		t.Errorf("unexpected message %q", got)
	}

	withMore := err.WithContext("status", 500)
	if _, ok := err.Context().Get("status"); ok {
		t.Error("WithContext must not mutate the original error")
	}
	if _, ok := withMore.Context().Get("path"); !ok {
		t.Error("WithContext must keep existing context")
	}
}

func TestGetCategory_Unclassified(t *testing.T) {
	if got := GetCategory(errors.New("plain")); got != CategoryInternal {
		t.Errorf("expected internal, got %s", got)
	}
}
