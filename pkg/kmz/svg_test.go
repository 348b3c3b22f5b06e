package kmz

import (
	"strings"
	"testing"
)

// TestRenderSVGDocument tests the overall document shape
func TestRenderSVGDocument(t *testing.T) {
	points := []ProjectedPoint{
		{X: 500, Y: 500},
		{X: 0, Y: 1000},
	}

	svg := string(RenderSVG(points, DefaultRenderOptions()))

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="1000" viewBox="0 0 1000 1000">
  <circle cx="500.00" cy="500.00" r="5" fill="red"/>
  <circle cx="0.00" cy="1000.00" r="5" fill="red"/>
</svg>
`
	if svg != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", svg, expected)
	}
}

// TestRenderSVGEmpty tests that zero points still produce a complete document
func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil, DefaultRenderOptions()))

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="1000" viewBox="0 0 1000 1000">
</svg>
`
	if svg != expected {
		t.Errorf("got:\n%s\nexpected an empty but well-formed document", svg)
	}
}

// TestRenderSVGOrder tests that circles appear in input order
func TestRenderSVGOrder(t *testing.T) {
	points := []ProjectedPoint{
		{X: 3, Y: 3}, {X: 1, Y: 1}, {X: 2, Y: 2},
	}

	svg := string(RenderSVG(points, DefaultRenderOptions()))

	first := strings.Index(svg, `cx="3.00"`)
	second := strings.Index(svg, `cx="1.00"`)
	third := strings.Index(svg, `cx="2.00"`)
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("missing circle in output:\n%s", svg)
	}
	if !(first < second && second < third) {
		t.Errorf("circles out of input order:\n%s", svg)
	}
}

// TestRenderSVGRounding tests two-decimal coordinate formatting
func TestRenderSVGRounding(t *testing.T) {
	points := []ProjectedPoint{
		{X: 123.456789, Y: 987.654321},
		{X: 0.005, Y: 0.004},
	}

	svg := string(RenderSVG(points, DefaultRenderOptions()))

	for _, fragment := range []string{
		`cx="123.46" cy="987.65"`,
		`cx="0.01" cy="0.00"`,
	} {
		if !strings.Contains(svg, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, svg)
		}
	}
}

// TestRenderSVGOptions tests the custom canvas, radius and fill settings
func TestRenderSVGOptions(t *testing.T) {
	opts := RenderOptions{
		Canvas:      Canvas{Width: 640, Height: 480},
		PointRadius: 2.5,
		FillColor:   "#3366cc",
	}

	svg := string(RenderSVG([]ProjectedPoint{{X: 10, Y: 20}}, opts))

	for _, fragment := range []string{
		`width="640" height="480"`,
		`viewBox="0 0 640 480"`,
		`r="2.5"`,
		`fill="#3366cc"`,
	} {
		if !strings.Contains(svg, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, svg)
		}
	}
}

// TestRenderSVGZeroOptions tests that a zero options value falls back to defaults
func TestRenderSVGZeroOptions(t *testing.T) {
	svg := string(RenderSVG([]ProjectedPoint{{X: 1, Y: 2}}, RenderOptions{}))

	for _, fragment := range []string{
		`width="1000" height="1000"`,
		`r="5"`,
		`fill="red"`,
	} {
		if !strings.Contains(svg, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, svg)
		}
	}
}

// TestSanitizeLayerName tests the one-to-one character replacement
func TestSanitizeLayerName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already safe", "Parks", "Parks"},
		{"safe with punctuation kept", "north_route-2", "north_route-2"},
		{"spaces and symbols", "Route #1 (north)", "Route__1__north_"},
		{"consecutive disallowed not collapsed", "a  b", "a__b"},
		{"dots", "v1.2.3", "v1_2_3"},
		{"slashes", "a/b\\c", "a_b_c"},
		{"unicode", "café", "caf_"},
		{"empty", "", ""},
		{"only disallowed", "***", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeLayerName(tt.input); got != tt.expected {
				t.Errorf("SanitizeLayerName(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestSanitizeLayerNameCollision tests that distinct names can collide
func TestSanitizeLayerNameCollision(t *testing.T) {
	a := SanitizeLayerName("North/South")
	b := SanitizeLayerName("North South")
	if a != b {
		t.Errorf("expected %q and %q to collide, got %q and %q", "North/South", "North South", a, b)
	}
}
