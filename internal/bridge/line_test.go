package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLine_SetText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		length int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"precomposed", "h\u00e9llo", 5},
		{"combining mark", "e\u0301x", 2},
		{"emoji", "a\U0001F600b", 3},
		{"zwj family", "\U0001F468\u200d\U0001F469\u200d\U0001F467", 1},
		{"cjk", "\u65e5\u672c\u8a9e", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLine()
			l.SetText(tt.text)
			require.Equal(t, tt.text, l.Text())
			require.Equal(t, tt.length, l.Length())
		})
	}
}

func TestLine_LocalOffset(t *testing.T) {
	l := NewLine()
	l.SetText("h\u00e9llo") // U+00E9 is 2 bytes

	require.Equal(t, 0, l.LocalOffset(-1))
	require.Equal(t, 0, l.LocalOffset(0))
	require.Equal(t, 1, l.LocalOffset(1))
	require.Equal(t, 1, l.LocalOffset(2), "column inside a cluster maps to that cluster")
	require.Equal(t, 2, l.LocalOffset(3))
	require.Equal(t, 5, l.LocalOffset(6), "column at end of text maps to length")
	require.Equal(t, 5, l.LocalOffset(100), "column past end clamps to length")
}

func TestLine_EngineColumn(t *testing.T) {
	l := NewLine()
	l.SetText("e\u0301x\U0001F600") // e + combining acute, x, emoji

	require.Equal(t, 0, l.EngineColumn(-3))
	require.Equal(t, 0, l.EngineColumn(0))
	require.Equal(t, 3, l.EngineColumn(1))
	require.Equal(t, 4, l.EngineColumn(2))
	require.Equal(t, 8, l.EngineColumn(3))
	require.Equal(t, 8, l.EngineColumn(9))
}

func TestLine_EmptyText(t *testing.T) {
	l := NewLine()
	require.Equal(t, 0, l.LocalOffset(0))
	require.Equal(t, 0, l.LocalOffset(5))
	require.Equal(t, 0, l.EngineColumn(0))
	require.Equal(t, 0, l.EngineColumn(2))
}

// TestLine_RoundTrip_Property verifies LocalOffset(EngineColumn(o)) == o for
// every offset in [0, Length()].
func TestLine_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom([]rune{
			'a', 'b', ' ', '\u00e9', '\u0301', '\u65e5', '\U0001F600', '\u200d', '\U0001F469', '\t',
		})).Draw(t, "text")

		l := NewLine()
		l.SetText(text)

		for o := 0; o <= l.Length(); o++ {
			col := l.EngineColumn(o)
			if col < 0 || col > len(text) {
				t.Fatalf("EngineColumn(%d) = %d out of [0, %d]", o, col, len(text))
			}
			if got := l.LocalOffset(col); got != o {
				t.Fatalf("round trip of %d through column %d gave %d (text %q)", o, col, got, text)
			}
		}
	})
}

// TestLine_LocalOffset_Monotonic_Property verifies columns map to offsets in
// order and never past Length().
func TestLine_LocalOffset_Monotonic_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		l := NewLine()
		l.SetText(text)

		prev := 0
		for col := 0; col <= len(text)+2; col++ {
			got := l.LocalOffset(col)
			if got < prev || got > l.Length() {
				t.Fatalf("LocalOffset(%d) = %d after %d (length %d)", col, got, prev, l.Length())
			}
			prev = got
		}
	})
}
