package llm

import (
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// IsRateLimited reports whether the provider failure is a rate-limit or
// quota-exhaustion condition. The classification is deliberately closed:
// either a failure matches one of the rules below, or it is treated as an
// ordinary provider error and propagated to the caller.
//
// Rules, in order:
//  1. an *openai.Error anywhere in the chain with HTTP status 429;
//  2. a case-insensitive "insufficient_quota" substring in the error text;
//  3. a case-insensitive "rate limit" substring in the error text.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "rate limit")
}
