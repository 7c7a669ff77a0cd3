package renderer

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLinesCount(t *testing.T) {
	// 90° steps: 4 meridians of 4 segments, 1 parallel (equator) of 8.
	got := GridLines(gomath.Pi/2, 8)

	segments := 4*4 + 1*8
	require.Len(t, got, segments*2*3)
}

func TestGridLinesOnUnitSphere(t *testing.T) {
	got := GridLines(DefaultGridStep, DefaultGridSegments)
	require.NotEmpty(t, got)

	for i := 0; i < len(got); i += 3 {
		x, y, z := float64(got[i]), float64(got[i+1]), float64(got[i+2])
		assert.InDelta(t, 1, gomath.Sqrt(x*x+y*y+z*z), 1e-6)
	}
}
