package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
)

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "api error 429", err: &openai.Error{StatusCode: http.StatusTooManyRequests}, want: true},
		{name: "wrapped api error 429", err: fmt.Errorf("generate: %w", &openai.Error{StatusCode: http.StatusTooManyRequests}), want: true},
		{name: "api error 500", err: &openai.Error{StatusCode: http.StatusInternalServerError}, want: false},
		{name: "insufficient quota message", err: errors.New("Error code 429: Insufficient_Quota for this key"), want: true},
		{name: "rate limit message", err: errors.New("Rate Limit reached for gpt-4o-mini"), want: true},
		{name: "unrelated message", err: errors.New("connection refused"), want: false},
		{name: "auth failure", err: &openai.Error{StatusCode: http.StatusUnauthorized}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}
