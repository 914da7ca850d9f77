package content

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Context keys attached to classified content errors.
const (
	ContextPath   = "path"
	ContextStatus = "status"
)

// newRetrievalError classifies a failed retrieval. status is 0 for transport
// failures that never produced a response.
func newRetrievalError(path string, status int, cause error) error {
	msg := "document retrieval failed"
	if status != 0 {
		msg = fmt.Sprintf("document retrieval failed: HTTP %d", status)
	}
	b := ferrors.RetrievalError(msg)
	if cause != nil {
		b = ferrors.WrapError(cause, ferrors.CategoryRetrieval, msg).Retryable()
	}
	b = b.WithContext(ContextPath, path)
	if status != 0 {
		b = b.WithContext(ContextStatus, status)
	}
	return b.Build()
}

func newDecodeError(path string, cause error) error {
	return ferrors.WrapError(cause, ferrors.CategoryDecode, "malformed document payload").
		Warning().
		WithContext(ContextPath, path).
		Build()
}

// IsRetrievalError reports whether err (or anything it wraps) is a retrieval failure.
func IsRetrievalError(err error) bool {
	return ferrors.HasCategory(err, ferrors.CategoryRetrieval)
}

// IsDecodeError reports whether err (or anything it wraps) is a malformed payload.
func IsDecodeError(err error) bool {
	return ferrors.HasCategory(err, ferrors.CategoryDecode)
}

// StatusOf returns the HTTP status recorded on a retrieval error.
func StatusOf(err error) (int, bool) {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return 0, false
	}
	return ce.Context().GetInt(ContextStatus)
}

// PathOf returns the store path recorded on a content error.
func PathOf(err error) (string, bool) {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return "", false
	}
	return ce.Context().GetString(ContextPath)
}
