package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// OrbitPlot renders the XY projection of a trajectory onto a braille
// canvas, autoscaled to the full extent of the motion, with a legend naming
// each body. frames holds one body-set snapshot per recorded time.
func OrbitPlot(frames [][]nbody.Body, width, height int) string {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return "(empty trajectory)\n"
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, frame := range frames {
		for _, b := range frame {
			minX = math.Min(minX, b.Position.X)
			maxX = math.Max(maxX, b.Position.X)
			minY = math.Min(minY, b.Position.Y)
			maxY = math.Max(maxY, b.Position.Y)
		}
	}
	// Degenerate extents (single point, purely vertical motion) still need
	// a non-zero scale.
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	canvas := NewCanvas(width, height)
	subW := float64(width*2 - 1)
	subH := float64(height*4 - 1)
	for _, frame := range frames {
		for _, b := range frame {
			px := int((b.Position.X - minX) / spanX * subW)
			// Screen y grows downward.
			py := int((maxY - b.Position.Y) / spanY * subH)
			canvas.Set(px, py)
		}
	}

	var sb strings.Builder
	sb.WriteString(canvas.String())
	sb.WriteString("bodies:")
	for _, b := range frames[0] {
		sb.WriteString(" " + b.Name)
	}
	sb.WriteByte('\n')
	sb.WriteString(fmt.Sprintf("x: [%.3g, %.3g]  y: [%.3g, %.3g]\n", minX, maxX, minY, maxY))
	return sb.String()
}

// EnergyPlot renders a line plot of relative energy drift over a run.
func EnergyPlot(drift []float64, height int) string {
	if len(drift) < 2 {
		return "(not enough samples to plot)\n"
	}
	return asciigraph.Plot(drift,
		asciigraph.Height(height),
		asciigraph.Caption("relative energy drift"),
	) + "\n"
}
