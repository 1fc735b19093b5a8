package glyph

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestForIndex(t *testing.T) {
	want := []rune(" .:-=+*#%&$@QWM█")
	assert.Len(t, want, PaletteSize)

	for i := 0; i < PaletteSize; i++ {
		assert.Equal(t, want[i], ForIndex(uint8(i)), "index %d", i)
		assert.Equal(t, ForIndex(uint8(i)), ForIndex(uint8(i)), "index %d not stable", i)
		assert.True(t, utf8.ValidRune(ForIndex(uint8(i))))
	}
}

func TestForIndex_Unique(t *testing.T) {
	seen := make(map[rune]int)
	for i, g := range Palette {
		if j, ok := seen[g]; ok {
			t.Errorf("glyph %q used by index %d and %d", g, j, i)
		}
		seen[g] = i
	}
}

func TestForRGB(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    rune
	}{
		{"black", 0, 0, 0, ' '},
		{"just below 50", 49, 49, 49, ' '},
		{"exactly 50", 50, 50, 50, '.'},
		{"mixed below 50", 149, 0, 0, ' '},
		{"mixed exactly 50", 150, 0, 0, '.'},
		{"99", 99, 99, 99, '.'},
		{"100", 100, 100, 100, '*'},
		{"149", 149, 149, 149, '*'},
		{"150", 150, 150, 150, '#'},
		{"199", 199, 199, 199, '#'},
		{"200", 200, 200, 200, '@'},
		{"white", 255, 255, 255, '@'},
		{"fractional below 100", 100, 100, 99, '.'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(ForRGB(tt.r, tt.g, tt.b)))
		})
	}
}

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 99.666, Brightness(100, 100, 99), 0.001)
	assert.Equal(t, 255.0, Brightness(255, 255, 255))
}
