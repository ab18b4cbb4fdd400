package generate

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Sentinel errors for the generation paths. ErrNoImageData and ErrNoVideoURI
// mark malformed-but-successful upstream responses; they are hard failures,
// not retryable conditions.
var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrNoImageData = errors.New("no image data found in the response")
	ErrNoVideoURI  = errors.New("no video URI returned")
	ErrTimedOut    = errors.New("video generation timed out")
)

// QuotaError reports an exhausted API quota or rate limit. It carries a
// user-actionable message and must never trigger an automatic retry.
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string {
	return e.Message
}

const quotaMessage = "API Limit Reached: You have exceeded the current quota. " +
	"Please wait a few moments before trying again or check your API billing details at ai.google.dev."

// GenerationError wraps any other failure from the transport or the model,
// passing the upstream message through.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Classify maps an upstream error into the shared taxonomy. All three request
// paths report failures through this single boundary so quota exhaustion is
// always distinguished from generic failure, whichever backend raised it.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	// Already-classified errors pass through untouched.
	var quota *QuotaError
	var generic *GenerationError
	if errors.As(err, &quota) || errors.As(err, &generic) {
		return err
	}
	for _, sentinel := range []error{ErrEmptyPrompt, ErrNoImageData, ErrNoVideoURI, ErrTimedOut} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	if isQuotaExhausted(err) {
		return &QuotaError{Message: quotaMessage}
	}
	return &GenerationError{Err: err}
}

func isQuotaExhausted(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}
	// Fallback for backends whose errors only carry the signature in text.
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
