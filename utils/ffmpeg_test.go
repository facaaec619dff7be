package utils

import (
	"strings"
	"testing"
)

func TestBuildWatermarkFilter(t *testing.T) {
	filter := BuildWatermarkFilter(240, 0.6, 20)
	expected := "[1:v]scale=240:-1,format=rgba,colorchannelmixer=aa=0.60[wm];[0:v][wm]overlay=W-w-20:H-h-20"
	if filter != expected {
		t.Errorf("BuildWatermarkFilter = %q, want %q", filter, expected)
	}
}

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Buy Now", "Buy Now"},
		{"It's here", `It'\''s here`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := EscapeDrawtext(tt.input); got != tt.expected {
			t.Errorf("EscapeDrawtext(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildDrawtextFilter(t *testing.T) {
	filter := BuildDrawtextFilter("Buy Now", "resources/bebas.ttf", 54, "0xFFFFFF", "0xCCCCCC", 50, 80, 1.0, 3.5)

	for _, want := range []string{
		"fontfile='resources/bebas.ttf'",
		"text='Buy Now'",
		"fontsize=54",
		"fontcolor=0xFFFFFF",
		"bordercolor=0xCCCCCC",
		"borderw=2",
		"x='max(W*0.5000-text_w/2,0)'",
		"y='max(H*0.8000-text_h/2,0)'",
		"enable='between(t,1.000000,3.500000)'",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q:\n%s", want, filter)
		}
	}

	// Fade expression references the window bounds
	if !strings.Contains(filter, "if(lt(t,1.000000+0.300000)") {
		t.Errorf("filter missing fade-in expression:\n%s", filter)
	}
	if !strings.Contains(filter, "if(gt(t,3.500000-0.300000)") {
		t.Errorf("filter missing fade-out expression:\n%s", filter)
	}
}

func TestBuildDrawtextFilterEscapesText(t *testing.T) {
	filter := BuildDrawtextFilter("It's 50% off", "f.ttf", 30, "0x000000", "0x000000", 0, 0, 0, 1)
	if !strings.Contains(filter, `text='It'\''s 50% off'`) {
		t.Errorf("quote not escaped:\n%s", filter)
	}
}
