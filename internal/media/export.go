package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/rinchamnan16/younan24/internal/constants"
)

// ExportFormat selects the export encoding.
type ExportFormat string

// Supported export formats. JPEG flattens transparency onto a white backing;
// PNG keeps per-pixel alpha.
const (
	FormatJPEG ExportFormat = "jpg"
	FormatPNG  ExportFormat = "png"
)

// ExportResult is an encoded, downloadable file.
type ExportResult struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Export re-applies the effective brightness/contrast transform to a
// generated image at its natural resolution and encodes it for download.
// Percent values follow CSS filter semantics: 100 is identity, values are
// clamped at this layer (negative brightness renders as black).
func Export(imageData []byte, brightnessPercent, contrastPercent float64, format ExportFormat, namePrefix string) (*ExportResult, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	filtered := applyFilter(img, brightnessPercent, contrastPercent)

	var buf bytes.Buffer
	var mimeType string
	switch format {
	case FormatPNG:
		mimeType = "image/png"
		if err := png.Encode(&buf, filtered); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case FormatJPEG:
		mimeType = "image/jpeg"
		// Flatten onto an opaque white backing; JPEG has no alpha channel and
		// the flattening must be deliberate, not whatever the encoder does.
		flat := image.NewRGBA(filtered.Bounds())
		draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), filtered, filtered.Bounds().Min, draw.Over)
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: constants.ExportQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	return &ExportResult{
		Filename: exportFilename(namePrefix, string(format), time.Now()),
		MIMEType: mimeType,
		Data:     buf.Bytes(),
	}, nil
}

// applyFilter renders img through brightness then contrast, matching the
// order of a CSS "brightness() contrast()" filter chain.
func applyFilter(img image.Image, brightnessPercent, contrastPercent float64) *image.NRGBA {
	b := brightnessPercent / 100
	if b < 0 {
		b = 0
	}
	k := contrastPercent / 100
	if k < 0 {
		k = 0
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA{
				R: filterChannel(c.R, b, k),
				G: filterChannel(c.G, b, k),
				B: filterChannel(c.B, b, k),
				A: c.A,
			})
		}
	}
	return out
}

func filterChannel(v uint8, brightness, contrast float64) uint8 {
	f := float64(v) / 255 * brightness
	f = (f-0.5)*contrast + 0.5
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// exportFilename builds "<prefix>-<timestamp>.<ext>" with a sortable
// timestamp token so repeated exports never collide within a second of each
// other's names. The prefix is NFC-normalized (the studio name is Khmer) and
// stripped of characters that are unsafe in filenames.
func exportFilename(prefix, ext string, now time.Time) string {
	prefix = norm.NFC.String(strings.TrimSpace(prefix))
	prefix = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}
		return r
	}, prefix)
	if prefix == "" {
		prefix = "YouNan"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("20060102-150405"), ext)
}
