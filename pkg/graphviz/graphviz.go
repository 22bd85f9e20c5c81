// Package graphviz renders a GameConfig's major-node graph to SVG for
// human audit before a configuration is committed to (spec.md §4.11,
// C11). It is never read back by any core component: this package exists
// purely so an operator can eyeball a route's prerequisites before
// shipping a configuration.
package graphviz

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/xixizk/pkg/model"
)

// Options configures SVG rendering.
type Options struct {
	Width      int
	Height     int
	NodeRadius int
	Margin     int
	Title      string
}

// DefaultOptions returns sensible default rendering options.
func DefaultOptions() Options {
	return Options{
		Width:      1000,
		Height:     800,
		NodeRadius: 22,
		Margin:     60,
		Title:      "major node graph",
	}
}

type position struct {
	X, Y float64
}

// RenderSVG draws one circle per major node, one line per major_adj
// prerequisite edge, and, when route is non-nil, highlights the nodes and
// edges the route traverses.
func RenderSVG(cfg *model.GameConfig, route []uint32) ([]byte, error) {
	return RenderSVGWithOptions(cfg, route, DefaultOptions())
}

// RenderSVGWithOptions is RenderSVG with caller-supplied layout options.
func RenderSVGWithOptions(cfg *model.GameConfig, route []uint32, opts Options) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("graphviz: config cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 1000
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 22
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	onRoute := make(map[uint32]bool, len(route))
	for _, r := range route {
		onRoute[r] = true
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	positions := circularLayout(len(cfg.MajorDesc), opts)

	drawEdges(canvas, cfg.MajorAdj, positions, onRoute)
	drawNodes(canvas, cfg, positions, onRoute, opts)

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2, opts.Title, "font-size:20px;fill:#222")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVG renders cfg/route and writes the result to path.
func SaveSVG(cfg *model.GameConfig, route []uint32, path string) error {
	data, err := RenderSVG(cfg, route)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func circularLayout(n int, opts Options) []position {
	positions := make([]position, n)
	if n == 0 {
		return positions
	}
	cx := float64(opts.Width) / 2
	cy := float64(opts.Height) / 2
	radius := math.Min(cx, cy) - float64(opts.Margin) - float64(opts.NodeRadius)
	if radius < 10 {
		radius = 10
	}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		positions[i] = position{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return positions
}

func drawEdges(canvas *svg.SVG, majorAdj [][]uint32, positions []position, onRoute map[uint32]bool) {
	for node, prereqs := range majorAdj {
		for _, p := range prereqs {
			if int(p) >= len(positions) || node >= len(positions) {
				continue
			}
			style := "stroke:#999999;stroke-width:2"
			if onRoute[uint32(node)] && onRoute[p] {
				style = "stroke:#d62728;stroke-width:3"
			}
			from, to := positions[p], positions[node]
			canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y), style)
		}
	}
}

func drawNodes(canvas *svg.SVG, cfg *model.GameConfig, positions []position, onRoute map[uint32]bool, opts Options) {
	for i, pos := range positions {
		fill := "#1f77b4"
		if onRoute[uint32(i)] {
			fill = "#d62728"
		}
		canvas.Circle(int(pos.X), int(pos.Y), opts.NodeRadius, fmt.Sprintf("fill:%s;stroke:#222;stroke-width:1", fill))

		label := fmt.Sprintf("%d", i)
		if i < len(cfg.MajorDesc) {
			switch cfg.MajorDesc[i].Kind {
			case model.MajorEnemy:
				label = fmt.Sprintf("%d:E%d", i, cfg.MajorDesc[i].EnemyID)
			case model.MajorDelta:
				label = fmt.Sprintf("%d:D%d", i, len(cfg.MajorDesc[i].Deltas))
			}
		}
		canvas.Text(int(pos.X)-opts.NodeRadius, int(pos.Y)+opts.NodeRadius+14, label, "font-size:12px;fill:#222")
	}
}
