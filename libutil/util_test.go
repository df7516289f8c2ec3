package libutil

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestHsl2rgb(t *testing.T) {
	cases := []struct {
		hsl, rgb mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{mgl32.Vec3{0, 1, 0.5}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{1. / 3., 1, 0.5}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{2. / 3., 1, 0.5}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0.5, 1, 0.25}, mgl32.Vec3{0, 0.5, 0.5}},
	}
	for _, c := range cases {
		got := Hsl2rgb(c.hsl)
		if !got.ApproxEqualThreshold(c.rgb, 1e-5) {
			t.Errorf("Hsl2rgb(%v) = %v, want %v", c.hsl, got, c.rgb)
		}
	}
}

func TestFrameLimiter(t *testing.T) {
	var slept []time.Duration
	fl := NewFrameLimiter(50)
	fl.sleep = func(d time.Duration) { slept = append(slept, d) }
	assert.Equal(t, 20*time.Millisecond, fl.Target)

	start := time.Now()
	assert.Zero(t, fl.Remaining(start))

	assert.Zero(t, fl.Wait())
	assert.Empty(t, slept)

	fl.last = start
	assert.Equal(t, 15*time.Millisecond, fl.Remaining(start.Add(5*time.Millisecond)))
	assert.Zero(t, fl.Remaining(start.Add(25*time.Millisecond)))

	// a frame that took longer than the budget does not sleep
	fl.last = time.Now().Add(-time.Second)
	delta := fl.Wait()
	assert.Empty(t, slept)
	assert.GreaterOrEqual(t, delta, time.Second)

	fl.Wait()
	assert.Len(t, slept, 1)
	assert.LessOrEqual(t, slept[0], 20*time.Millisecond)
}
