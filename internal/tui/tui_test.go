package tui

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

const testKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>City Map</name>
    <Folder>
      <name>Parks</name>
      <Placemark><Point><coordinates>10.0,20.0,0</coordinates></Point></Placemark>
      <Placemark><Point><coordinates>10.5,20.5,0</coordinates></Point></Placemark>
    </Folder>
    <Folder>
      <name>Route #1 (north)</name>
      <Placemark><Point><coordinates>10.2,20.2,0</coordinates></Point></Placemark>
    </Folder>
  </Document>
</kml>`

func parseDoc(t *testing.T) *kmz.Document {
	t.Helper()
	doc, err := kmz.NewParser().ParseKML([]byte(testKML))
	require.NoError(t, err)
	return doc
}

// key wraps a printable key press as the bubbletea message for it.
func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press runs one message through Update and returns the evolved model.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update must return a tui.Model")
	return out
}

func TestCanvasMark(t *testing.T) {
	c := newCanvas(2, 2)
	c.mark(0, 0) // dot 1 of cell (0,0)
	c.mark(3, 7) // dot 8 of cell (1,1)
	c.mark(-1, 0)
	c.mark(99, 99)

	rows := strings.Split(c.String(), "\n")
	require.Len(t, rows, 2)

	top := []rune(rows[0])
	bottom := []rune(rows[1])
	assert.Equal(t, rune(0x2801), top[0])
	assert.Equal(t, ' ', top[1])
	assert.Equal(t, ' ', bottom[0])
	assert.Equal(t, rune(0x2880), bottom[1])
}

func TestMicroPosition(t *testing.T) {
	viewport := kmz.Bounds{MinLon: 0, MaxLon: 10, MinLat: 0, MaxLat: 10}

	mx, my, ok := microPosition(kmz.Point{Lon: 5, Lat: 5}, viewport, 10, 10)
	require.True(t, ok)
	assert.Equal(t, 9, mx)
	assert.Equal(t, 19, my)

	// North of center lands on a higher row, so a smaller my.
	_, myNorth, ok := microPosition(kmz.Point{Lon: 5, Lat: 8}, viewport, 10, 10)
	require.True(t, ok)
	assert.Less(t, myNorth, my)

	_, _, ok = microPosition(kmz.Point{Lon: 5, Lat: 5}, kmz.Bounds{}, 10, 10)
	assert.False(t, ok)
}

func TestNewDefaults(t *testing.T) {
	doc := parseDoc(t)

	m, err := New(doc, Options{})
	require.NoError(t, err)

	assert.Equal(t, kmz.DefaultZoom, m.zoom)
	assert.Equal(t, doc.Bounds().Center(), m.center)
	assert.Equal(t, kmz.ExportFilename, m.output)
	assert.Equal(t, []bool{true, true}, m.visible)
}

func TestNewInvalidZoom(t *testing.T) {
	doc := parseDoc(t)

	_, err := New(doc, Options{Zoom: 42})
	var invalidZoom *kmz.ErrInvalidZoom
	require.ErrorAs(t, err, &invalidZoom)
	assert.Equal(t, 42, invalidZoom.Zoom)
}

func TestNewClampsCenter(t *testing.T) {
	doc := parseDoc(t)

	m, err := New(doc, Options{Center: &kmz.Point{Lon: -170, Lat: -80}})
	require.NoError(t, err)
	assert.Equal(t, kmz.Point{Lon: 10.0, Lat: 20.0}, m.center)
}

func TestZoomKeys(t *testing.T) {
	doc := parseDoc(t)
	m, err := New(doc, Options{Zoom: kmz.MaxZoom - 1})
	require.NoError(t, err)

	m = press(t, m, key("+"))
	assert.Equal(t, kmz.MaxZoom, m.zoom)

	// Already at the top; another press holds.
	m = press(t, m, key("+"))
	assert.Equal(t, kmz.MaxZoom, m.zoom)

	for i := 0; i < 2*kmz.MaxZoom; i++ {
		m = press(t, m, key("-"))
	}
	assert.Equal(t, kmz.MinZoom, m.zoom)
	assert.Contains(t, m.status, "zoom 1")
}

func TestPanClampsToBounds(t *testing.T) {
	doc := parseDoc(t)
	m, err := New(doc, Options{})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, doc.Bounds().MinLon, m.center.Lon)

	for i := 0; i < 100; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, doc.Bounds().MaxLat, m.center.Lat)
}

func TestLayerToggleKeys(t *testing.T) {
	doc := parseDoc(t)
	m, err := New(doc, Options{})
	require.NoError(t, err)

	m = press(t, m, key("1"))
	assert.Equal(t, []bool{false, true}, m.visible)
	assert.Contains(t, m.status, "Parks: hidden")

	m = press(t, m, key("1"))
	assert.Equal(t, []bool{true, true}, m.visible)
	assert.Contains(t, m.status, "Parks: visible")

	// Digits beyond the layer count are ignored.
	m = press(t, m, key("9"))
	assert.Equal(t, []bool{true, true}, m.visible)

	m = press(t, m, key("l"))
	assert.Equal(t, []bool{false, false}, m.visible)
	m = press(t, m, key("l"))
	assert.Equal(t, []bool{true, true}, m.visible)
}

func TestQuitKey(t *testing.T) {
	doc := parseDoc(t)
	m, err := New(doc, Options{})
	require.NoError(t, err)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewRendersLayout(t *testing.T) {
	doc := parseDoc(t)
	m, err := New(doc, Options{})
	require.NoError(t, err)

	// No terminal size yet, nothing to draw.
	assert.Equal(t, "", m.View())

	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.Contains(t, view, "City Map")
	assert.Contains(t, view, "zoom 5")
	assert.Contains(t, view, "2 layers, 3 points")
	assert.Contains(t, view, "q quit")

	// The sidebar lists layers once opened.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	view = m.View()
	assert.Contains(t, view, "Parks")
}

func TestExportKey(t *testing.T) {
	doc := parseDoc(t)
	out := filepath.Join(t.TempDir(), "view.zip")
	m, err := New(doc, Options{Zoom: kmz.MinZoom, Output: out})
	require.NoError(t, err)

	m = press(t, m, key("e"))
	assert.Contains(t, m.status, "exported 2 layers")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "Parks.svg", zr.File[0].Name)
	assert.Equal(t, "Route__1__north_.svg", zr.File[1].Name)

	// Nothing visible, nothing written.
	m = press(t, m, key("l"))
	m = press(t, m, key("e"))
	assert.Contains(t, m.status, "no visible layers")
}
