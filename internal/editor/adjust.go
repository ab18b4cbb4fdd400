// Package editor owns the per-session editing state: the tone adjustments
// driving the live preview and the selection state feeding the prompt
// composer.
package editor

// Adjustments is the ten-knob tone adjustment record the UI sliders drive.
// Brightness and contrast are percentages with a baseline of 100; the rest
// are signed offsets with a baseline of 0.
//
// Highlights, shadows, whites, blacks, and texture are collected and stored
// but do not enter the effective filter. The original product shipped the
// sliders without wiring them into the transform; that behavior is kept
// as-is rather than inventing a formula.
type Adjustments struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Exposure   float64 `json:"exposure"`
	Highlights float64 `json:"highlights"`
	Shadows    float64 `json:"shadows"`
	Whites     float64 `json:"whites"`
	Blacks     float64 `json:"blacks"`
	Texture    float64 `json:"texture"`
	Clarity    float64 `json:"clarity"`
	Dehaze     float64 `json:"dehaze"`
}

// Filter is the effective transform applied by the preview surface and the
// export compositor. Values are CSS-filter percentages and intentionally not
// clamped here; the raster layer clamps.
type Filter struct {
	BrightnessPercent float64 `json:"brightness_percent"`
	ContrastPercent   float64 `json:"contrast_percent"`
}

// DefaultAdjustments returns the exact baseline record.
func DefaultAdjustments() Adjustments {
	return Adjustments{Brightness: 100, Contrast: 100}
}

// AutoAdjustments applies the one-click auto look on top of an existing
// record, touching only the five fields the auto preset defines.
func AutoAdjustments(a Adjustments) Adjustments {
	a.Brightness = 105
	a.Contrast = 110
	a.Exposure = 5
	a.Clarity = 10
	a.Dehaze = 5
	return a
}

// EffectiveFilter maps an adjustment record to the brightness/contrast pair
// actually rendered. The formula is fixed; preview and export must agree on
// it exactly for the saved file to match what the user saw.
func EffectiveFilter(a Adjustments) Filter {
	return Filter{
		BrightnessPercent: a.Brightness + a.Exposure - 0.1*a.Dehaze,
		ContrastPercent:   a.Contrast + 0.2*a.Clarity + 0.2*a.Dehaze,
	}
}
