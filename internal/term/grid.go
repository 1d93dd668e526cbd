// Package term holds the terminal front-ends: an interactive gocui console
// and a line-oriented batch reporter.
package term

import (
	"strings"

	"predprey/internal/core"
	"predprey/internal/sims/predprey"

	"github.com/logrusorgru/aurora"
)

const cropNotice = "grid larger than the view"

// RenderGrid draws cells as one glyph per cell, one string per row. Rows and
// columns beyond maxW x maxH are cropped; a cropped grid ends with a notice
// line instead of its last visible row. Non-positive limits disable cropping.
func RenderGrid(au aurora.Aurora, cells []uint8, size core.Size, maxW, maxH int) []string {
	if size.W <= 0 || size.H <= 0 || len(cells) != size.Cells() {
		return nil
	}
	if maxW <= 0 {
		maxW = size.W
	}
	if maxH <= 0 {
		maxH = size.H
	}
	cropped := size.W > maxW || size.H > maxH

	glyphs := [...]string{
		predprey.Empty:      ".",
		predprey.Rabbit:     au.Yellow("r").String(),
		predprey.FemaleWolf: au.Red("F").String(),
		predprey.MaleWolf:   au.Blue("M").String(),
	}

	rows := min(size.H, maxH)
	lines := make([]string, 0, rows)
	var b strings.Builder
	for y := 0; y < rows; y++ {
		if cropped && y == rows-1 {
			lines = append(lines, au.Red(cropNotice).String())
			break
		}
		b.Reset()
		row := cells[y*size.W : (y+1)*size.W]
		for _, v := range row[:min(size.W, maxW)] {
			if int(v) < len(glyphs) {
				b.WriteString(glyphs[v])
			} else {
				b.WriteByte('?')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
