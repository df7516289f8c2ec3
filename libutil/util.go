package libutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const Deg2Rad = float32(math.Pi / 180)

type Deleter interface {
	Delete()
}

// Hsl2rgb converts hue, saturation and lightness, all in [0, 1], to rgb.
func Hsl2rgb(hsl mgl32.Vec3) mgl32.Vec3 {
	h, s, l := hsl[0], hsl[1], hsl[2]
	if s == 0 {
		return mgl32.Vec3{l, l, l}
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return mgl32.Vec3{
		hue2rgb(p, q, h+1./3.),
		hue2rgb(p, q, h),
		hue2rgb(p, q, h-1./3.),
	}
}

func hue2rgb(p, q, h float32) float32 {
	switch {
	case h < 0:
		h += 1
	case h > 1:
		h -= 1
	}

	switch {
	case 6*h < 1:
		return p + (q-p)*6*h
	case 2*h < 1:
		return q
	case 3*h < 2:
		return p + (q-p)*6*(2./3.-h)
	}
	return p
}
