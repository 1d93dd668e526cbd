//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"predprey/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	graphBackground = color.RGBA{R: 24, G: 24, B: 30, A: 255}
	graphAxis       = color.RGBA{R: 70, G: 70, B: 80, A: 255}
)

// Graph plots the rabbit and wolf history as two line series.
type Graph struct {
	rect image.Rectangle
	plot image.Rectangle
}

// NewGraph lays out a graph inside rect, leaving room for the legend.
func NewGraph(rect image.Rectangle) *Graph {
	plot := image.Rect(rect.Min.X+4, rect.Min.Y+lineHeight+4, rect.Max.X-4, rect.Max.Y-4)
	return &Graph{rect: rect, plot: plot}
}

// Draw renders the history of sim when it exposes populations.
func (g *Graph) Draw(screen *ebiten.Image, sim core.Sim) {
	r := g.rect
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), graphBackground, false)
	vector.StrokeLine(screen, float32(g.plot.Min.X), float32(g.plot.Max.Y), float32(g.plot.Max.X), float32(g.plot.Max.Y), 1, graphAxis, false)

	provider, ok := sim.(core.PopulationProvider)
	if !ok {
		return
	}
	rabbits := provider.RabbitHistory()
	wolves := provider.WolfHistory()
	peak := SeriesPeak(rabbits, wolves)

	face := basicfont.Face7x13
	text.Draw(screen, "rabbits", face, r.Min.X+6, r.Min.Y+lineHeight-2, rabbitColor)
	text.Draw(screen, "wolves", face, r.Min.X+66, r.Min.Y+lineHeight-2, wolfColor)
	label := fmt.Sprintf("max %d", peak)
	bounds := text.BoundString(face, label)
	text.Draw(screen, label, face, r.Max.X-6-bounds.Dx(), r.Min.Y+lineHeight-2, dimTextColor)

	limit := provider.HistoryLimit()
	drawSeries(screen, ChartPoints(rabbits, limit, peak, g.plot), rabbitColor)
	drawSeries(screen, ChartPoints(wolves, limit, peak, g.plot), wolfColor)
}

func drawSeries(screen *ebiten.Image, points []ChartPoint, col color.Color) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, 1.5, col, true)
	}
}
