package generate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	geminiImageModel = "gemini-2.5-flash-image"
	geminiVideoModel = "veo-3.1-fast-generate-preview"

	// DefaultPollInterval is how often a pending video operation is polled.
	DefaultPollInterval = 10 * time.Second

	defaultVideoPrompt = "A cinematic video of this subject"
)

// GeminiProvider talks to the Gemini API for image edits, merges, and Veo
// video generation. The API key is held by the provider and attached
// per-request; there is no ambient client state to refresh.
type GeminiProvider struct {
	client       *genai.Client
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       zerolog.Logger
}

// NewGeminiProvider creates a Gemini-backed provider. pollInterval <= 0
// falls back to DefaultPollInterval.
func NewGeminiProvider(ctx context.Context, apiKey string, pollInterval time.Duration, logger zerolog.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	return &GeminiProvider{
		client:       client,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 5 * time.Minute},
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// Name identifies the image model in use.
func (p *GeminiProvider) Name() string {
	return geminiImageModel
}

// EditImage submits the instruction and image as one multimodal prompt and
// returns the first inline image part of the response. Empty prompts are
// rejected before any network call.
func (p *GeminiProvider) EditImage(ctx context.Context, req EditRequest) (*ImageResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: req.Prompt},
				{InlineData: &genai.Blob{Data: req.Image.Data, MIMEType: req.Image.MIMEType}},
			},
		},
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiImageModel, contents, nil)
	if err != nil {
		return nil, Classify(err)
	}
	return firstInlineImage(result)
}

// MergeImages submits the synthesized merge instruction followed by the
// subject and scene images.
func (p *GeminiProvider) MergeImages(ctx context.Context, req MergeRequest) (*ImageResult, error) {
	style := req.StylePrompt
	if strings.TrimSpace(style) == "" {
		style = DefaultMergeStyle
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildMergePrompt(style, req.RemoveBackground)},
				{InlineData: &genai.Blob{Data: req.Subject.Data, MIMEType: req.Subject.MIMEType}},
				{InlineData: &genai.Blob{Data: req.Scene.Data, MIMEType: req.Scene.MIMEType}},
			},
		},
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiImageModel, contents, nil)
	if err != nil {
		return nil, Classify(err)
	}
	return firstInlineImage(result)
}

// firstInlineImage finds the first response part carrying inline binary
// image data. A response without one is a hard failure.
func firstInlineImage(result *genai.GenerateContentResponse) (*ImageResult, error) {
	for _, cand := range result.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &ImageResult{MIMEType: mimeType, Data: part.InlineData.Data}, nil
		}
	}
	return nil, ErrNoImageData
}

// GenerateVideo starts a Veo operation, polls it until done or the context
// deadline fires, then downloads the produced video.
func (p *GeminiProvider) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoResult, error) {
	prompt := req.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultVideoPrompt
	}

	op, err := p.client.Models.GenerateVideos(ctx, geminiVideoModel, prompt,
		&genai.Image{ImageBytes: req.Image.Data, MIMEType: req.Image.MIMEType},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     "720p",
			AspectRatio:    "16:9",
		})
	if err != nil {
		return nil, Classify(err)
	}

	p.logger.Info().Str("operation", op.Name).Msg("video generation started")

	err = awaitOperation(ctx, p.pollInterval,
		func() bool { return op.Done },
		func(ctx context.Context) error {
			next, pollErr := p.client.Operations.GetVideosOperation(ctx, op, nil)
			if pollErr != nil {
				return Classify(pollErr)
			}
			op = next
			return nil
		})
	if err != nil {
		return nil, err
	}

	if op.Error != nil {
		return nil, classifyOperationError(op.Error)
	}

	uri := videoURI(op)
	if uri == "" {
		return nil, ErrNoVideoURI
	}

	p.logger.Info().Str("operation", op.Name).Msg("video generation complete, downloading")
	return p.downloadVideo(ctx, uri)
}

func videoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil {
		return ""
	}
	for _, gv := range op.Response.GeneratedVideos {
		if gv != nil && gv.Video != nil && gv.Video.URI != "" {
			return gv.Video.URI
		}
	}
	return ""
}

// classifyOperationError maps a completed-with-error operation through the
// shared taxonomy using the status payload the service attached.
func classifyOperationError(opErr map[string]any) error {
	msg := fmt.Sprint(opErr)
	if m, ok := opErr["message"].(string); ok && m != "" {
		msg = m
	}
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return &QuotaError{Message: quotaMessage}
	}
	return &GenerationError{Err: fmt.Errorf("video operation failed: %s", msg)}
}

// downloadVideo performs the authenticated fetch of the completed video.
// The API key travels as a query parameter, matching the operation URIs the
// service hands out.
func (p *GeminiProvider) downloadVideo(ctx context.Context, uri string) (*VideoResult, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+p.apiKey, nil)
	if err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("building video download request: %w", err)}
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Classify(fmt.Errorf("failed to download generated video: status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("reading video bytes: %w", err)}
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	return &VideoResult{MIMEType: mimeType, Data: data}, nil
}
