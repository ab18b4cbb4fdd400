// Package catalog holds the immutable preset catalogs the editor offers:
// background replacements, office uniform presets, and official state
// uniforms. Each entry carries the natural-language instruction fragment
// that is sent to the image model.
package catalog

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// NoneID marks the empty selection in the uniform and state uniform catalogs.
const NoneID = "none"

// DefaultBackgroundID is the background selected for a fresh editor session.
const DefaultBackgroundID = "white"

// UnblurPrompt is the fixed instruction used by the one-click enhance action.
const UnblurPrompt = "Sharpen and enhance the details of this photo. Remove motion blur, grain, and noise. Increase the resolution and clarity for professional printing quality."

// Preset is a single catalog entry. Prompt may be empty for "none" entries.
type Preset struct {
	ID     string `yaml:"id" json:"id"`
	Label  string `yaml:"label" json:"label"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

type catalogFile struct {
	Backgrounds   []Preset `yaml:"backgrounds"`
	Uniforms      []Preset `yaml:"uniforms"`
	StateUniforms []Preset `yaml:"state_uniforms"`
}

var catalogs catalogFile

func init() {
	if err := yaml.Unmarshal(presetsYAML, &catalogs); err != nil {
		// Embedded file, malformed YAML can only be a build-time mistake.
		panic("failed to unmarshal embedded presets.yaml: " + err.Error())
	}
}

// Backgrounds returns the background catalog in display order.
func Backgrounds() []Preset {
	return append([]Preset(nil), catalogs.Backgrounds...)
}

// Uniforms returns the office uniform catalog in display order.
func Uniforms() []Preset {
	return append([]Preset(nil), catalogs.Uniforms...)
}

// StateUniforms returns the state uniform catalog in display order.
func StateUniforms() []Preset {
	return append([]Preset(nil), catalogs.StateUniforms...)
}

func find(presets []Preset, id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Background looks up a background preset by id.
func Background(id string) (Preset, bool) {
	return find(catalogs.Backgrounds, id)
}

// Uniform looks up an office uniform preset by id.
func Uniform(id string) (Preset, bool) {
	return find(catalogs.Uniforms, id)
}

// StateUniform looks up a state uniform preset by id.
func StateUniform(id string) (Preset, bool) {
	return find(catalogs.StateUniforms, id)
}
