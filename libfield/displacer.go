package libfield

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Displacer applies the lensing displacement to a batch of samples.
// dst must have the same length as src.
type Displacer interface {
	Displace(src, dst []mgl32.Vec3, elapsedMs float32) error
	Release()
}

type swDisplacer struct {
	mass   float32
	source mgl32.Vec3
}

func NewSwDisplacer(mass float32, source mgl32.Vec3) Displacer {
	return &swDisplacer{
		mass:   mass,
		source: source,
	}
}

func (d *swDisplacer) Displace(src, dst []mgl32.Vec3, elapsedMs float32) error {
	if len(src) != len(dst) {
		return fmt.Errorf("source has %d samples but destination %d: %w", len(src), len(dst), ErrInvalidArgument)
	}
	for i, p := range src {
		dst[i] = Displace(p, elapsedMs, d.mass, d.source)
	}
	return nil
}

func (d *swDisplacer) Release() {}
