package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors surfaced by the services layer.
var (
	// ErrNotFound reports a missing profile or match document.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports malformed input (empty ids, self-swipe, unknown action).
	ErrValidation = errors.New("validation error")
	// ErrPermissionDenied reports a rejected store credential; it is
	// propagated for the session-lifecycle layer and never handled here.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNoCandidate reports a decision against an exhausted or empty session.
	ErrNoCandidate = errors.New("no current candidate")
	// ErrRetryExhausted reports a transient store failure that survived
	// every write attempt; the last underlying cause is wrapped alongside.
	ErrRetryExhausted = errors.New("retries exhausted")
)

const (
	maxWriteAttempts = 3
	retryBackoff     = 100 * time.Millisecond
)

// translateStoreError maps DynamoDB auth failures onto ErrPermissionDenied
// so callers can match with errors.Is. Other errors pass through unchanged.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException", "ExpiredTokenException":
			return fmt.Errorf("%w: %s", ErrPermissionDenied, apiErr.ErrorMessage())
		}
	}
	return err
}

// isConditionFailure reports whether the error is a lost conditional write,
// either directly or inside a cancelled transaction.
func isConditionFailure(err error) bool {
	var check *types.ConditionalCheckFailedException
	if errors.As(err, &check) {
		return true
	}
	var cancelled *types.TransactionCanceledException
	if errors.As(err, &cancelled) {
		for _, reason := range cancelled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// isRetryable classifies an error as a transient write failure worth
// retrying. Validation, missing documents, rejected credentials and lost
// condition checks never heal on retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrPermissionDenied) || errors.Is(err, context.Canceled) {
		return false
	}
	return !isConditionFailure(err)
}

// withRetry runs fn up to maxWriteAttempts times with a linear backoff,
// stopping early on non-retryable errors or context cancellation.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		if err = fn(); err == nil || !isRetryable(err) {
			return err
		}
		if attempt == maxWriteAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}
	return fmt.Errorf("%w: %w", ErrRetryExhausted, err)
}
