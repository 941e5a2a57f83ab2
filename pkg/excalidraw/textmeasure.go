package excalidraw

import "strings"

// Glyph width fractions relative to font size, tuned for the editor's
// default sans font. Exact metrics are unnecessary: labels only need enough
// width that the editor doesn't re-wrap them.
const (
	charWidthDefault = 0.55
	charWidthNarrow  = 0.30
	charWidthWide    = 0.85
	charWidthUpper   = 0.68
	charWidthDigit   = 0.58
	charWidthSpace   = 0.35

	// DefaultLineHeight is the editor's line-height multiplier.
	DefaultLineHeight = 1.25
)

const narrowChars = "iljtfr.,:;'|!()[]"

// MeasureText estimates the rendered width of a single line of text at the
// given font size.
func MeasureText(text string, fontSize float64) float64 {
	var units float64
	for _, r := range text {
		switch {
		case r == ' ':
			units += charWidthSpace
		case strings.ContainsRune(narrowChars, r):
			units += charWidthNarrow
		case r == 'm' || r == 'w' || r == 'M' || r == 'W':
			units += charWidthWide
		case r >= 'A' && r <= 'Z':
			units += charWidthUpper
		case r >= '0' && r <= '9':
			units += charWidthDigit
		default:
			units += charWidthDefault
		}
	}
	return units * fontSize
}

// MeasureLines estimates width and height of a multi-line text block:
// the width of its widest line and line count times line height.
func MeasureLines(lines []string, fontSize float64) (width, height float64) {
	for _, line := range lines {
		if w := MeasureText(line, fontSize); w > width {
			width = w
		}
	}
	return width, float64(len(lines)) * fontSize * DefaultLineHeight
}
