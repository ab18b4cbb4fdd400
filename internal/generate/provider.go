// Package generate is the client side of the external generation service:
// single-image edits, two-image merges, and long-running video generation.
// It hides the three request/response shapes behind one success/failure
// contract with a shared error taxonomy.
package generate

import (
	"context"
	"fmt"
)

// Payload is one image on the wire: raw bytes plus the MIME type the
// uploader declared.
type Payload struct {
	MIMEType string
	Data     []byte
}

// EditRequest asks for a single edited image from one source image and an
// instruction.
type EditRequest struct {
	Image  Payload
	Prompt string
}

// MergeRequest composites a subject into a scene. RemoveBackground selects
// whether the subject is cut out of its original background first.
type MergeRequest struct {
	Subject          Payload
	Scene            Payload
	StylePrompt      string
	RemoveBackground bool
}

// VideoRequest animates a subject image. An empty prompt falls back to a
// default motion description.
type VideoRequest struct {
	Image  Payload
	Prompt string
}

// ImageResult is a generated image.
type ImageResult struct {
	MIMEType string
	Data     []byte
}

// VideoResult is a generated, fully downloaded video.
type VideoResult struct {
	MIMEType string
	Data     []byte
}

// Provider produces edited and merged images. Implementations make at most
// one network call per invocation and never retry internally; the caller
// decides whether to re-invoke.
type Provider interface {
	Name() string
	EditImage(ctx context.Context, req EditRequest) (*ImageResult, error)
	MergeImages(ctx context.Context, req MergeRequest) (*ImageResult, error)
}

// VideoGenerator runs the long-poll video generation operation. The caller
// bounds the operation with a context deadline; polling stops on the first
// error or when the deadline fires.
type VideoGenerator interface {
	GenerateVideo(ctx context.Context, req VideoRequest) (*VideoResult, error)
}

// DefaultMergeStyle is used when the merge studio's style field is empty.
const DefaultMergeStyle = "Realistic, high quality, seamless blend"

// buildMergePrompt synthesizes the merge instruction. The subject handling
// clause is chosen by removeBackground.
func buildMergePrompt(stylePrompt string, removeBackground bool) string {
	bgInstruction := "placing the first image (without removing its background)"
	if removeBackground {
		bgInstruction = "extracting the main subject from the first image (remove its original background) and placing it"
	}
	return fmt.Sprintf(`Create a new image by %s into the scene/background of the second image.
        Apply the following style/description to the final image: "%s".
        Ensure the lighting and perspective match for a cohesive result.`, bgInstruction, stylePrompt)
}
