package graphics

import "math"

// Handle names a drawable owned by a Backend. The zero Handle is never
// returned by AllocateDrawable.
type Handle uint32

type Program int

const (
	ProgramSolid Program = iota + 1
	ProgramBackground
)

// Uniform names understood by every Backend.
const (
	UniformTime   = "time"   // float32, background phase
	UniformOffset = "offset" // Vec2, translation applied to vertices
	UniformColor  = "color"  // color.Color for ProgramSolid
)

// Backend is everything the scenes need from the renderer. Coordinates are
// in viewport pixels with the origin at the bottom left.
type Backend interface {
	AllocateDrawable(vertices []Vertex) Handle
	Release(h Handle)
	Draw(h Handle)
	UseProgram(p Program)
	SetUniform(name string, value any)
	ClearFrame()
	PresentFrame()
}

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float32) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normalize returns the unit vector of v. ok is false for the zero vector,
// which has no direction.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

type Vertex = Vec2

// Rect is an axis aligned box. It contains points on its min edges but not
// on its max edges, so boxes that touch never share a point.
type Rect struct {
	Min, Max Vec2
}

func RectFromSize(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// RectVertices is r as two triangles.
func RectVertices(r Rect) []Vertex {
	return []Vertex{
		r.Min, {r.Max.X, r.Min.Y}, {r.Min.X, r.Max.Y},
		{r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y},
	}
}

// CircleVertices is a filled circle as a triangle list around center.
func CircleVertices(center Vec2, radius float32, segments int) []Vertex {
	if segments < 3 {
		segments = 3
	}
	vs := make([]Vertex, 0, segments*3)
	point := func(i int) Vertex {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return Vertex{
			X: center.X + radius*float32(math.Cos(a)),
			Y: center.Y + radius*float32(math.Sin(a)),
		}
	}
	for i := 0; i < segments; i++ {
		vs = append(vs, center, point(i), point(i+1))
	}
	return vs
}
