/*package geom contains routines for reasoning about particle positions inside
a periodic, orthorhombic simulation box of arbitrary dimension.
*/
package geom

import (
	"fmt"
	"math"
)

// Vec is a position vector. All vectors used in a single run share the
// dimension of the Box they live in.
type Vec []float64

// NewVec returns a zeroed vector with dim components.
func NewVec(dim int) Vec { return make(Vec, dim) }

// Copy copies the components of src into v.
func (v Vec) Copy(src Vec) { copy(v, src) }

// Clone returns a newly allocated copy of v.
func (v Vec) Clone() Vec {
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

// Box gives the edge lengths of a box which is periodic in every dimension.
type Box []float64

// NewCubicBox returns a box with dim edges all of the given width.
func NewCubicBox(dim int, width float64) Box {
	box := make(Box, dim)
	for i := range box {
		box[i] = width
	}
	return box
}

// Dim returns the dimension of the box.
func (box Box) Dim() int { return len(box) }

// Volume returns the D-dimensional volume of the box.
func (box Box) Volume() float64 {
	vol := 1.0
	for _, w := range box {
		vol *= w
	}
	return vol
}

// MinEdge returns the length of the shortest edge of the box.
func (box Box) MinEdge() float64 {
	min := math.Inf(+1)
	for _, w := range box {
		if w < min {
			min = w
		}
	}
	return min
}

// Contains returns true if every component of v is in [0, edge).
func (box Box) Contains(v Vec) bool {
	for d, w := range box {
		if v[d] < 0 || v[d] >= w {
			return false
		}
	}
	return true
}

// Wrap moves v back inside the box in place. Coordinates below 0 gain an
// edge and coordinates at or above the edge lose one, so a coordinate of
// exactly 0 stays at 0 and the result always lies in [0, edge). A single edge
// is added or subtracted per dimension, which is all a trial move shorter than an edge
// can require. Larger excursions fall through to a modulo.
func (box Box) Wrap(v Vec) {
	for d, w := range box {
		x := v[d]
		if x < 0 {
			x += w
		} else if x >= w {
			x -= w
		}

		if x < 0 || x >= w {
			x = math.Mod(x, w)
			if x < 0 {
				x += w
			}
			// -1e-17 + w rounds to w.
			if x >= w {
				x = 0
			}
		}

		v[d] = x
	}
}

// SphereVolume returns the volume of a dim-dimensional ball with the given
// diameter.
func SphereVolume(dim int, diameter float64) float64 {
	fd := float64(dim)
	lg, _ := math.Lgamma(fd/2 + 1)
	unit := math.Exp(fd/2*math.Log(math.Pi) - lg)
	return unit * math.Pow(diameter/2, fd)
}

// String formats the box the way it is written into trajectory comments.
func (box Box) String() string {
	s := "["
	for i, w := range box {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(w)
	}
	return s + "]"
}

// wrapDist returns the minimum-image separation of x1 and x2 along an axis of
// the given width.
func wrapDist(x1, x2, width float64) float64 {
	d := math.Abs(x2 - x1)
	if d > width/2 {
		return width - d
	}
	return d
}

// DistanceSqr returns the squared minimum-image distance between p1 and p2.
func DistanceSqr(p1, p2 Vec, box Box) float64 {
	sum := 0.0
	for d := range p1 {
		dx := wrapDist(p1[d], p2[d], box[d])
		sum += dx * dx
	}
	return sum
}

// Distance returns the minimum-image distance between p1 and p2.
func Distance(p1, p2 Vec, box Box) float64 {
	return math.Sqrt(DistanceSqr(p1, p2, box))
}

// Overlaps returns true if spheres of diameters d1 and d2 centered on p1 and
// p2 overlap. Touching spheres overlap.
func Overlaps(p1, p2 Vec, d1, d2 float64, box Box) bool {
	return Distance(p1, p2, box) <= (d1+d2)/2
}

// OverlapsDiameter is Overlaps for two spheres of the same diameter.
func OverlapsDiameter(p1, p2 Vec, diameter float64, box Box) bool {
	return Distance(p1, p2, box) <= diameter
}
