package generate

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openaiImageModel = openai.ImageModelGPTImage1

// OpenAIProvider is the alternate image backend, driving the OpenAI image
// edit endpoint. It covers edits and merges; video generation stays on the
// Gemini provider.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

// Name identifies the image model in use.
func (p *OpenAIProvider) Name() string {
	return openaiImageModel
}

// EditImage submits the source image and instruction to the image edit
// endpoint.
func (p *OpenAIProvider) EditImage(ctx context.Context, req EditRequest) (*ImageResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	return p.edit(ctx, req.Prompt, []Payload{req.Image})
}

// MergeImages submits subject and scene with the synthesized merge
// instruction; the edit endpoint accepts multiple source images.
func (p *OpenAIProvider) MergeImages(ctx context.Context, req MergeRequest) (*ImageResult, error) {
	style := req.StylePrompt
	if strings.TrimSpace(style) == "" {
		style = DefaultMergeStyle
	}
	return p.edit(ctx, buildMergePrompt(style, req.RemoveBackground), []Payload{req.Subject, req.Scene})
}

func (p *OpenAIProvider) edit(ctx context.Context, prompt string, images []Payload) (*ImageResult, error) {
	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = openai.File(bytes.NewReader(img.Data), "image.png", img.MIMEType)
	}

	res, err := p.client.Images.Edit(ctx, openai.ImageEditParams{
		Image:  openai.ImageEditParamsImageUnion{OfFileArray: readers},
		Prompt: prompt,
		Model:  openaiImageModel,
	})
	if err != nil {
		return nil, Classify(err)
	}

	if len(res.Data) == 0 || res.Data[0].B64JSON == "" {
		return nil, ErrNoImageData
	}
	data, err := base64.StdEncoding.DecodeString(res.Data[0].B64JSON)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	return &ImageResult{MIMEType: "image/png", Data: data}, nil
}
