package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"
)

// --- Classify tests ---

func TestClassify_QuotaSignatures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"status code in text", errors.New("request failed with status 429 Too Many Requests")},
		{"grpc status in text", errors.New("rpc error: RESOURCE_EXHAUSTED: quota exceeded")},
		{"api error code", genai.APIError{Code: 429, Message: "too many requests"}},
		{"api error status", genai.APIError{Code: 500, Status: "RESOURCE_EXHAUSTED"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := Classify(tc.err)
			var quota *QuotaError
			if !errors.As(classified, &quota) {
				t.Fatalf("expected QuotaError, got %T: %v", classified, classified)
			}
			if !strings.Contains(quota.Message, "quota") {
				t.Errorf("quota message must be actionable, got %q", quota.Message)
			}
		})
	}
}

func TestClassify_GenericFailureKeepsUpstreamMessage(t *testing.T) {
	upstream := errors.New("model is overloaded")
	classified := Classify(upstream)

	var generic *GenerationError
	if !errors.As(classified, &generic) {
		t.Fatalf("expected GenerationError, got %T", classified)
	}
	if !strings.Contains(classified.Error(), "model is overloaded") {
		t.Errorf("upstream message lost: %v", classified)
	}
}

func TestClassify_SentinelsPassThrough(t *testing.T) {
	for _, sentinel := range []error{ErrEmptyPrompt, ErrNoImageData, ErrNoVideoURI, ErrTimedOut} {
		if got := Classify(sentinel); !errors.Is(got, sentinel) {
			t.Errorf("sentinel %v was re-wrapped into %v", sentinel, got)
		}
	}
}

func TestClassify_AlreadyClassifiedUnchanged(t *testing.T) {
	quota := &QuotaError{Message: "stop"}
	if got := Classify(quota); got != error(quota) {
		t.Errorf("QuotaError re-classified into %v", got)
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) must be nil")
	}
}

// --- merge prompt tests ---

func TestBuildMergePrompt_RemoveBackground(t *testing.T) {
	p := buildMergePrompt("cinematic sunset", true)
	if !strings.Contains(p, "extracting the main subject from the first image") {
		t.Errorf("missing extraction clause: %q", p)
	}
	if !strings.Contains(p, `"cinematic sunset"`) {
		t.Errorf("style prompt not embedded: %q", p)
	}
	if !strings.Contains(p, "lighting and perspective") {
		t.Errorf("missing cohesion instruction: %q", p)
	}
}

func TestBuildMergePrompt_KeepBackground(t *testing.T) {
	p := buildMergePrompt("x", false)
	if !strings.Contains(p, "placing the first image (without removing its background)") {
		t.Errorf("missing keep-background clause: %q", p)
	}
	if strings.Contains(p, "extracting the main subject") {
		t.Errorf("both clauses present: %q", p)
	}
}

// --- response parsing tests ---

func TestFirstInlineImage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "here is your image"},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2, 3}}},
						{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{9}}},
					},
				},
			},
		},
	}

	got, err := firstInlineImage(resp)
	if err != nil {
		t.Fatalf("firstInlineImage failed: %v", err)
	}
	if got.MIMEType != "image/png" || len(got.Data) != 3 {
		t.Errorf("expected first inline part, got %+v", got)
	}
}

func TestFirstInlineImage_NoImagePart(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "sorry, text only"}}}},
		},
	}

	_, err := firstInlineImage(resp)
	if !errors.Is(err, ErrNoImageData) {
		t.Errorf("expected ErrNoImageData, got %v", err)
	}
}

func TestClassifyOperationError(t *testing.T) {
	err := classifyOperationError(map[string]any{"code": 8, "message": "RESOURCE_EXHAUSTED: out of quota"})
	var quota *QuotaError
	if !errors.As(err, &quota) {
		t.Errorf("expected QuotaError, got %v", err)
	}

	err = classifyOperationError(map[string]any{"message": "internal error"})
	var generic *GenerationError
	if !errors.As(err, &generic) {
		t.Errorf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("operation message lost: %v", err)
	}
}

// --- poll loop tests ---

func TestAwaitOperation_CompletesWhenDone(t *testing.T) {
	polls := 0
	done := false

	err := awaitOperation(context.Background(), time.Millisecond,
		func() bool { return done },
		func(context.Context) error {
			polls++
			if polls == 3 {
				done = true
			}
			return nil
		})
	if err != nil {
		t.Fatalf("awaitOperation failed: %v", err)
	}
	if polls != 3 {
		t.Errorf("expected 3 polls, got %d", polls)
	}
}

func TestAwaitOperation_DeadlineSurfacesTimeout(t *testing.T) {
	// Regression test: an operation that never completes must not hang the
	// caller once a deadline is attached.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := awaitOperation(ctx, time.Millisecond,
		func() bool { return false },
		func(context.Context) error { return nil })
	if !errors.Is(err, ErrTimedOut) {
		t.Errorf("expected ErrTimedOut, got %v", err)
	}
}

func TestAwaitOperation_CancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := awaitOperation(ctx, time.Hour,
		func() bool { return false },
		func(context.Context) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAwaitOperation_PollErrorTerminates(t *testing.T) {
	polls := 0
	boom := errors.New("poll failed")

	err := awaitOperation(context.Background(), time.Millisecond,
		func() bool { return false },
		func(context.Context) error {
			polls++
			return boom
		})
	if !errors.Is(err, boom) {
		t.Errorf("expected poll error, got %v", err)
	}
	if polls != 1 {
		t.Errorf("polling must stop on first error, got %d polls", polls)
	}
}

func TestAwaitOperation_AlreadyDoneSkipsPolling(t *testing.T) {
	err := awaitOperation(context.Background(), time.Hour,
		func() bool { return true },
		func(context.Context) error {
			t.Fatal("poll must not run for a completed operation")
			return nil
		})
	if err != nil {
		t.Fatalf("awaitOperation failed: %v", err)
	}
}
