package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexToRGB parses a "#RRGGBB" or "RRGGBB" color value
func HexToRGB(hex string) (int, int, int, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q", hex)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return int(value >> 16 & 0xFF), int(value >> 8 & 0xFF), int(value & 0xFF), nil
}

// ParseRGBColor parses an "rgb(r,g,b)" or hex color value
func ParseRGBColor(s string) (int, int, int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "rgb(") {
		return HexToRGB(s)
	}

	inner := strings.TrimSuffix(s[strings.Index(s, "(")+1:], ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid rgb color: %q", s)
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return 0, 0, 0, fmt.Errorf("invalid rgb component in %q", s)
		}
		values[i] = v
	}
	return values[0], values[1], values[2], nil
}

// FFmpegColor formats an RGB triple the way ffmpeg filter options expect
func FFmpegColor(r, g, b int) string {
	return fmt.Sprintf("0x%02X%02X%02X", r, g, b)
}

// PaletteToRGBTriples converts a hex brand palette into rgb(r, g, b)
// strings, preserving order
func PaletteToRGBTriples(palette []string) ([]string, error) {
	triples := make([]string, 0, len(palette))
	for _, hex := range palette {
		r, g, b, err := HexToRGB(hex)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fmt.Sprintf("rgb(%d, %d, %d)", r, g, b))
	}
	return triples, nil
}

// StrokeColor derives the outline color for overlay text: the fill color
// with its lightness reduced by 0.2, so the text stays legible against
// arbitrary backgrounds
func StrokeColor(r, g, b int) (int, int, int) {
	h, l, s := rgbToHLS(float64(r)/255, float64(g)/255, float64(b)/255)
	l = math.Max(0, l-0.2)
	nr, ng, nb := hlsToRGB(h, l, s)
	return int(math.Round(nr * 255)), int(math.Round(ng * 255)), int(math.Round(nb * 255))
}

func rgbToHLS(r, g, b float64) (h, l, s float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, l, 0
	}

	delta := maxC - minC
	if l <= 0.5 {
		s = delta / (maxC + minC)
	} else {
		s = delta / (2 - maxC - minC)
	}

	switch maxC {
	case r:
		h = (g - b) / delta
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, l, s
}

func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2

	return hueToRGB(m1, m2, h+1.0/3), hueToRGB(m1, m2, h), hueToRGB(m1, m2, h-1.0/3)
}

func hueToRGB(m1, m2, hue float64) float64 {
	if hue < 0 {
		hue++
	}
	if hue > 1 {
		hue--
	}
	switch {
	case hue < 1.0/6:
		return m1 + (m2-m1)*6*hue
	case hue < 1.0/2:
		return m2
	case hue < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-hue)*6
	default:
		return m1
	}
}
