package catalog

import "strings"

// ClothingKind discriminates the clothing instruction source. Only one source
// can be active at a time; the tagged union below makes that a structural
// property instead of two selection fields that have to clear each other.
type ClothingKind int

const (
	// ClothingNone means no clothing instruction is applied.
	ClothingNone ClothingKind = iota
	// ClothingUniform selects an entry from the office uniform catalog.
	ClothingUniform
	// ClothingStateUniform selects an entry from the state uniform catalog.
	ClothingStateUniform
)

// ClothingSelection is the single active clothing choice for a session.
// The zero value means "none".
type ClothingSelection struct {
	Kind ClothingKind
	ID   string
}

// SelectUniform builds a selection from the office uniform catalog.
// Picking the "none" entry collapses to the empty selection.
func SelectUniform(id string) ClothingSelection {
	if id == NoneID {
		return ClothingSelection{}
	}
	return ClothingSelection{Kind: ClothingUniform, ID: id}
}

// SelectStateUniform builds a selection from the state uniform catalog.
func SelectStateUniform(id string) ClothingSelection {
	if id == NoneID {
		return ClothingSelection{}
	}
	return ClothingSelection{Kind: ClothingStateUniform, ID: id}
}

// UniformID reports the selection as the pair of catalog ids the UI renders,
// with "none" standing in for whichever catalog is inactive.
func (s ClothingSelection) UniformID() string {
	if s.Kind == ClothingUniform {
		return s.ID
	}
	return NoneID
}

// StateUniformID is the state uniform counterpart of UniformID.
func (s ClothingSelection) StateUniformID() string {
	if s.Kind == ClothingStateUniform {
		return s.ID
	}
	return NoneID
}

// fragment resolves the selection to its catalog prompt fragment.
// Unknown ids resolve to the empty string.
func (s ClothingSelection) fragment() string {
	switch s.Kind {
	case ClothingUniform:
		if p, ok := Uniform(s.ID); ok {
			return p.Prompt
		}
	case ClothingStateUniform:
		if p, ok := StateUniform(s.ID); ok {
			return p.Prompt
		}
	}
	return ""
}

// ComposePrompt builds the edit instruction from the background selection and
// the active clothing selection: background fragment first, clothing fragment
// second, single space between, surrounding whitespace trimmed. Either piece
// may be empty; callers must reject an empty result before contacting the
// generation service.
func ComposePrompt(backgroundID string, clothing ClothingSelection) string {
	var b strings.Builder
	if bg, ok := Background(backgroundID); ok && bg.Prompt != "" {
		b.WriteString(bg.Prompt)
		b.WriteString(" ")
	}
	b.WriteString(clothing.fragment())
	return strings.TrimSpace(b.String())
}
