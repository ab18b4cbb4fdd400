package editor

import "testing"

func TestEffectiveFilter_BaselineIdentity(t *testing.T) {
	f := EffectiveFilter(DefaultAdjustments())
	if f.BrightnessPercent != 100 || f.ContrastPercent != 100 {
		t.Errorf("baseline must map to 100/100, got %+v", f)
	}
}

func TestEffectiveFilter_Formula(t *testing.T) {
	cases := []struct {
		name               string
		adj                Adjustments
		brightness, contrast float64
	}{
		{
			name:       "exposure and dehaze",
			adj:        Adjustments{Brightness: 100, Contrast: 100, Exposure: 10, Dehaze: 20},
			brightness: 108, // 100 + 10 - 0.1*20
			contrast:   104, // 100 + 0.2*20
		},
		{
			name:       "clarity",
			adj:        Adjustments{Brightness: 100, Contrast: 100, Clarity: 50},
			brightness: 100,
			contrast:   110,
		},
		{
			name:       "negative passthrough",
			adj:        Adjustments{Brightness: 0, Contrast: 0, Exposure: -100, Dehaze: 100},
			brightness: -110,
			contrast:   20,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := EffectiveFilter(tc.adj)
			if f.BrightnessPercent != tc.brightness {
				t.Errorf("brightness = %v, want %v", f.BrightnessPercent, tc.brightness)
			}
			if f.ContrastPercent != tc.contrast {
				t.Errorf("contrast = %v, want %v", f.ContrastPercent, tc.contrast)
			}
		})
	}
}

func TestEffectiveFilter_InertFields(t *testing.T) {
	adj := DefaultAdjustments()
	adj.Highlights = 80
	adj.Shadows = -40
	adj.Whites = 30
	adj.Blacks = -30
	adj.Texture = 90

	f := EffectiveFilter(adj)
	if f.BrightnessPercent != 100 || f.ContrastPercent != 100 {
		t.Errorf("inert fields leaked into the filter: %+v", f)
	}
}

func TestAutoAdjustments(t *testing.T) {
	base := DefaultAdjustments()
	base.Shadows = -25 // must be left alone by the auto preset

	auto := AutoAdjustments(base)
	if auto.Brightness != 105 || auto.Contrast != 110 || auto.Exposure != 5 || auto.Clarity != 10 || auto.Dehaze != 5 {
		t.Errorf("auto preset values wrong: %+v", auto)
	}
	if auto.Shadows != -25 {
		t.Errorf("auto preset must not touch shadows, got %v", auto.Shadows)
	}
}

func TestDefaultAdjustments_ResetRestoresBaseline(t *testing.T) {
	a := AutoAdjustments(DefaultAdjustments())
	a.Texture = 42

	if got := DefaultAdjustments(); got != (Adjustments{Brightness: 100, Contrast: 100}) {
		t.Errorf("reset does not restore exact baseline: %+v", got)
	}
}
