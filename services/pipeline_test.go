package services

import "testing"

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		product  string
		shortcut string
		expected Strategy
	}{
		{"Acme Cola", "GoldReserve", StrategyFullGeneration},
		{"GoldReserve", "GoldReserve", StrategyShortcut},
		{"goldreserve", "GoldReserve", StrategyShortcut},
		{"  GoldReserve  ", "GoldReserve", StrategyShortcut},
		{"GoldReserve Plus", "GoldReserve", StrategyFullGeneration},
		// No shortcut configured: everything runs full generation
		{"", "", StrategyFullGeneration},
		{"GoldReserve", "", StrategyFullGeneration},
	}

	for _, tt := range tests {
		got := SelectStrategy(tt.product, tt.shortcut)
		if got != tt.expected {
			t.Errorf("SelectStrategy(%q, %q) = %v, want %v", tt.product, tt.shortcut, got, tt.expected)
		}
	}
}

func TestAssetExt(t *testing.T) {
	tests := []struct {
		url      string
		fallback string
		expected string
	}{
		{"https://cdn.example.com/logo.png", ".png", ".png"},
		{"https://cdn.example.com/logo.JPG", ".png", ".jpg"},
		{"https://cdn.example.com/clip.mp4?token=abc", ".mp4", ".mp4"},
		{"https://cdn.example.com/asset", ".png", ".png"},
		{"https://cdn.example.com/download?id=42", ".mp4", ".mp4"},
	}

	for _, tt := range tests {
		got := assetExt(tt.url, tt.fallback)
		if got != tt.expected {
			t.Errorf("assetExt(%q, %q) = %q, want %q", tt.url, tt.fallback, got, tt.expected)
		}
	}
}
