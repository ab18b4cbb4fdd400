package catalog

import (
	"strings"
	"testing"
)

func TestComposePrompt_BackgroundOnly(t *testing.T) {
	bg, ok := Background("white")
	if !ok {
		t.Fatal("white background missing from catalog")
	}

	got := ComposePrompt("white", ClothingSelection{})
	if got != bg.Prompt {
		t.Errorf("expected background fragment alone, got %q", got)
	}
	if strings.TrimSpace(got) != got {
		t.Error("composed prompt must be trimmed")
	}
}

func TestComposePrompt_BackgroundAndUniform(t *testing.T) {
	bg, _ := Background("white")
	uniform, ok := Uniform("men")
	if !ok {
		t.Fatal("men uniform missing from catalog")
	}

	got := ComposePrompt("white", SelectUniform("men"))
	want := bg.Prompt + " " + uniform.Prompt
	if got != want {
		t.Errorf("prompt mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestComposePrompt_StateUniformWins(t *testing.T) {
	// A state uniform selection carries its own fragment; the office uniform
	// catalog does not contribute at all.
	police, _ := StateUniform("police")
	got := ComposePrompt("blue", SelectStateUniform("police"))
	if !strings.HasSuffix(got, police.Prompt) {
		t.Errorf("expected state uniform fragment, got %q", got)
	}
	men, _ := Uniform("men")
	if strings.Contains(got, men.Prompt) {
		t.Error("office uniform fragment must not appear with a state uniform selected")
	}
}

func TestComposePrompt_EmptyResult(t *testing.T) {
	// Unknown background plus no clothing composes to the empty string; the
	// request layer is responsible for refusing to send it.
	if got := ComposePrompt("no-such-background", ClothingSelection{}); got != "" {
		t.Errorf("expected empty prompt, got %q", got)
	}
}

func TestComposePrompt_UnknownClothingIgnored(t *testing.T) {
	bg, _ := Background("green")
	got := ComposePrompt("green", SelectUniform("no-such-uniform"))
	if got != bg.Prompt {
		t.Errorf("unknown uniform id should contribute nothing, got %q", got)
	}
}

func TestClothingSelection_MutualExclusivity(t *testing.T) {
	cases := []struct {
		name      string
		sel       ClothingSelection
		uniform   string
		stateUnif string
	}{
		{"none", ClothingSelection{}, NoneID, NoneID},
		{"uniform", SelectUniform("women"), "women", NoneID},
		{"state uniform", SelectStateUniform("teacher"), NoneID, "teacher"},
		{"uniform none id", SelectUniform(NoneID), NoneID, NoneID},
		{"state none id", SelectStateUniform(NoneID), NoneID, NoneID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sel.UniformID(); got != tc.uniform {
				t.Errorf("UniformID = %q, want %q", got, tc.uniform)
			}
			if got := tc.sel.StateUniformID(); got != tc.stateUnif {
				t.Errorf("StateUniformID = %q, want %q", got, tc.stateUnif)
			}
			if tc.sel.UniformID() != NoneID && tc.sel.StateUniformID() != NoneID {
				t.Error("both catalogs active at once")
			}
		})
	}
}

func TestCatalogs_NoneEntriesAndDefaults(t *testing.T) {
	if _, ok := Background(DefaultBackgroundID); !ok {
		t.Errorf("default background %q not in catalog", DefaultBackgroundID)
	}
	for _, p := range []struct {
		name   string
		lookup func(string) (Preset, bool)
	}{
		{"uniform", Uniform},
		{"state uniform", StateUniform},
	} {
		entry, ok := p.lookup(NoneID)
		if !ok {
			t.Fatalf("%s catalog has no %q entry", p.name, NoneID)
		}
		if entry.Prompt != "" {
			t.Errorf("%s none entry must have an empty fragment", p.name)
		}
	}
}
