package ui

import "image"

// ChartPoint is a vertex of a plotted series in screen space.
type ChartPoint struct {
	X, Y float32
}

// SeriesPeak returns the largest value across all series, at least 1.
func SeriesPeak(series ...[]int) int {
	peak := 1
	for _, s := range series {
		for _, v := range s {
			peak = max(peak, v)
		}
	}
	return peak
}

// ChartPoints maps series onto rect. Samples occupy limit evenly spaced
// slots from the left edge, so a filling history grows to the right; values
// scale so that peak touches the top edge.
func ChartPoints(series []int, limit, peak int, rect image.Rectangle) []ChartPoint {
	if len(series) == 0 || rect.Empty() {
		return nil
	}
	limit = max(limit, len(series))
	peak = max(peak, 1)
	dx := float32(0)
	if limit > 1 {
		dx = float32(rect.Dx()) / float32(limit-1)
	}
	points := make([]ChartPoint, len(series))
	for i, v := range series {
		v = min(max(v, 0), peak)
		points[i] = ChartPoint{
			X: float32(rect.Min.X) + float32(i)*dx,
			Y: float32(rect.Max.Y) - float32(v)*float32(rect.Dy())/float32(peak),
		}
	}
	return points
}
