// Package tui implements the interactive terminal preview: a braille map of
// the parsed document with pan, zoom and layer toggles, plus an export key
// that writes the drawing archive without leaving the session.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

const sidebarWidth = 30

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
)

// Options configures a preview session.
type Options struct {
	// Zoom is the starting zoom level. Zero means kmz.DefaultZoom.
	Zoom int

	// Center is the starting pan position. Nil means the midpoint of the
	// data bounds; positions outside the bounds are clamped onto them.
	Center *kmz.Point

	// Output is the path the export key writes the archive to. Empty means
	// kmz.ExportFilename in the working directory.
	Output string

	// Render configures the exported drawings.
	Render kmz.RenderOptions
}

// Model is the bubbletea model for the preview session.
type Model struct {
	doc    *kmz.Document
	output string
	render kmz.RenderOptions

	width  int
	height int

	zoom   int
	center kmz.Point

	visible []bool // parallel to doc.Layers()

	showSidebar bool
	helpVisible bool
	status      string

	layerList list.Model
}

// New builds the preview model for a parsed document.
func New(doc *kmz.Document, opts Options) (Model, error) {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = kmz.DefaultZoom
	}
	if zoom < kmz.MinZoom || zoom > kmz.MaxZoom {
		return Model{}, &kmz.ErrInvalidZoom{Zoom: zoom}
	}

	center := doc.Bounds().Center()
	if opts.Center != nil {
		center = doc.Bounds().Clamp(*opts.Center)
	}

	output := opts.Output
	if output == "" {
		output = kmz.ExportFilename
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(nil, d, 0, 0)
	l.Title = "Layers"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := Model{
		doc:         doc,
		output:      output,
		render:      opts.Render,
		zoom:        zoom,
		center:      center,
		visible:     make([]bool, doc.LayerCount()),
		helpVisible: true,
		status:      fmt.Sprintf("%d layers, %d points", doc.LayerCount(), doc.PointCount()),
		layerList:   l,
	}
	for i := range m.visible {
		m.visible[i] = true
	}
	m.refreshLayerItems()
	return m, nil
}

// Run starts the preview and blocks until the user quits.
func Run(doc *kmz.Document, opts Options) error {
	m, err := New(doc, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.layerList, cmd = m.layerList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		if m.zoom < kmz.MaxZoom {
			m.zoom++
		}
		m.status = fmt.Sprintf("zoom %d (%.2f° window)", m.zoom, 2*kmz.HalfExtent(m.zoom))
	case "-", "_":
		if m.zoom > kmz.MinZoom {
			m.zoom--
		}
		m.status = fmt.Sprintf("zoom %d (%.2f° window)", m.zoom, 2*kmz.HalfExtent(m.zoom))
	case "up", "down", "left", "right":
		// With the sidebar open the arrows move the layer selection instead;
		// the list update below picks them up.
		if !m.showSidebar {
			switch key {
			case "up":
				m.pan(0, 1)
			case "down":
				m.pan(0, -1)
			case "left":
				m.pan(-1, 0)
			case "right":
				m.pan(1, 0)
			}
		}
	case "tab":
		m.showSidebar = !m.showSidebar
	case "enter":
		if m.showSidebar {
			m.toggleLayer(m.layerList.Index())
		}
	case "l":
		all := true
		for _, v := range m.visible {
			all = all && v
		}
		for i := range m.visible {
			m.visible[i] = !all
		}
		m.refreshLayerItems()
		m.status = fmt.Sprintf("%d of %d layers visible", m.visibleCount(), len(m.visible))
	case "r":
		m.center = m.doc.Bounds().Center()
		m.zoom = kmz.DefaultZoom
		m.status = "view reset"
	case "e":
		m.exportArchive()
	case "h":
		m.helpVisible = !m.helpVisible
	default:
		if i := digitIndex(key); i >= 0 {
			m.toggleLayer(i)
		}
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.layerList, cmd = m.layerList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pan moves the view one step along each axis. A step is a quarter of the
// current half-extent, so eight presses cross the window; the center never
// leaves the data bounds.
func (m *Model) pan(dx, dy int) {
	step := kmz.HalfExtent(m.zoom) / 4
	m.center = m.doc.Bounds().Clamp(kmz.Point{
		Lon: m.center.Lon + float64(dx)*step,
		Lat: m.center.Lat + float64(dy)*step,
	})
	m.status = fmt.Sprintf("center %.4f, %.4f", m.center.Lon, m.center.Lat)
}

func (m *Model) toggleLayer(i int) {
	if i < 0 || i >= len(m.visible) {
		return
	}
	m.visible[i] = !m.visible[i]
	m.refreshLayerItems()

	state := "hidden"
	if m.visible[i] {
		state = "visible"
	}
	m.status = fmt.Sprintf("%s: %s", m.doc.Layers()[i].Name(), state)
}

func (m *Model) refreshLayerItems() {
	layers := m.doc.Layers()
	items := make([]list.Item, len(layers))
	for i := range layers {
		marker := "[ ]"
		if m.visible[i] {
			marker = "[x]"
		}
		items[i] = layerItem{label: fmt.Sprintf("%d %s %s (%d)", i+1, marker, layers[i].Name(), layers[i].PointCount())}
	}
	m.layerList.SetItems(items)
}

func (m Model) visibleCount() int {
	n := 0
	for _, v := range m.visible {
		if v {
			n++
		}
	}
	return n
}

func (m Model) visibleLayerNames() []string {
	names := make([]string, 0, len(m.visible))
	for i, layer := range m.doc.Layers() {
		if m.visible[i] {
			names = append(names, layer.Name())
		}
	}
	return names
}

// viewport derives the current window. The key handler keeps zoom in range,
// so the error branch of ViewportAround is unreachable here.
func (m Model) viewport() kmz.Bounds {
	viewport, _ := kmz.ViewportAround(m.center, m.zoom)
	return viewport
}

// exportArchive writes the current view of the visible layers to the output
// path and reports the outcome on the status line.
func (m *Model) exportArchive() {
	names := m.visibleLayerNames()
	if len(names) == 0 {
		m.status = "export skipped: no visible layers"
		return
	}

	result, err := kmz.Export(m.doc, kmz.ExportOptions{
		Layers:   names,
		Viewport: m.viewport(),
		Render:   m.render,
	})
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	if err := os.WriteFile(m.output, result.Archive, 0o644); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d layers to %s", len(result.Previews), m.output)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}

	title := m.doc.Title()
	if title == "" {
		title = "untitled map"
	}
	header := titleStyle.Render(" kmz2svg ─ "+title) +
		dimStyle.Render(fmt.Sprintf("  zoom %d  center %.4f, %.4f", m.zoom, m.center.Lon, m.center.Lat))

	var sidebar string
	sidebarTaken := 0
	if m.showSidebar {
		m.layerList.SetSize(sidebarWidth-2, contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.layerList.View())
		sidebarTaken = sidebarWidth + 1
	}

	mapWidth := m.width - sidebarTaken
	if mapWidth < 10 {
		mapWidth = 10
	}
	mapView := lipgloss.NewStyle().Width(mapWidth).Height(contentHeight).Render(m.renderMap(mapWidth, contentHeight))

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := statusStyle.Render(" "+m.status+" ") + "\n" + m.renderHelp()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMap rasterizes the visible layers' points inside the current viewport.
func (m Model) renderMap(w, h int) string {
	viewport := m.viewport()
	grid := newCanvas(w, h)
	for i, layer := range m.doc.Layers() {
		if !m.visible[i] {
			continue
		}
		for _, p := range m.doc.PointsInViewport(layer.Name(), viewport) {
			mx, my, ok := microPosition(p, viewport, w, h)
			if !ok {
				continue
			}
			grid.mark(mx, my)
		}
	}
	return grid.String()
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"1-9 toggle layer",
		"Tab layers",
		"Enter toggle",
		"e export",
		"r reset",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

// digitIndex maps keys "1" through "9" to layer indexes 0 through 8.
func digitIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}

// layerItem is one sidebar row.
type layerItem struct {
	label string
}

func (it layerItem) Title() string       { return it.label }
func (it layerItem) Description() string { return "" }
func (it layerItem) FilterValue() string { return it.label }
