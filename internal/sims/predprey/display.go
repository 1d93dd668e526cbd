package predprey

import "image/color"

var predpreyPalette = []color.RGBA{
	Empty:      {R: 24, G: 28, B: 22, A: 255},
	Rabbit:     {R: 222, G: 214, B: 190, A: 255},
	FemaleWolf: {R: 214, G: 92, B: 72, A: 255},
	MaleWolf:   {R: 96, G: 118, B: 160, A: 255},
}

// Palette exposes the colors indexed by Cell value.
func (w *World) Palette() []color.RGBA {
	return predpreyPalette
}

// EnergyMask returns the wolf energy field scaled so the strongest wolf reads
// as 1. Fields where every wolf holds at most 1 energy are scaled by 1. The
// slice is reused between calls.
func (w *World) EnergyMask() []float32 {
	peak := 1.0
	for _, e := range w.energyCurr {
		if e > peak {
			peak = e
		}
	}
	for i, e := range w.energyCurr {
		w.energyMask[i] = float32(e / peak)
	}
	return w.energyMask
}
