package surface

type OpKind int

const (
	OpRect OpKind = iota
	OpCircle
	OpLine
	OpTriangle
)

func (k OpKind) String() string {
	switch k {
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpTriangle:
		return "triangle"
	}
	return "unknown"
}

// Op is one recorded drawing call. Points holds the rect origin and extent,
// the circle centre, the line endpoints or the triangle vertices.
type Op struct {
	Kind     OpKind
	Points   []Point
	Radius   float64
	Width    float64
	Color    Color
	Gradient RadialGradient
}

// Recorder is a Surface that keeps the calls of the current frame. A FillRect
// covering the whole surface starts a new frame.
type Recorder struct {
	w, h   int
	ops    []Op
	frames int
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	if x <= 0 && y <= 0 && x+w >= float64(r.w) && y+h >= float64(r.h) {
		r.ops = r.ops[:0]
		r.frames++
	}
	r.ops = append(r.ops, Op{Kind: OpRect, Points: []Point{{x, y}, {w, h}}, Color: c})
}

func (r *Recorder) FillCircleWithGradient(center Point, radius float64, g RadialGradient) {
	r.ops = append(r.ops, Op{Kind: OpCircle, Points: []Point{center}, Radius: radius, Color: g.Color, Gradient: g})
}

func (r *Recorder) StrokeLine(from, to Point, width float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpLine, Points: []Point{from, to}, Width: width, Color: c})
}

func (r *Recorder) FillTriangle(a, b, c Point, g RadialGradient) {
	r.ops = append(r.ops, Op{Kind: OpTriangle, Points: []Point{a, b, c}, Color: g.Color, Gradient: g})
}

// Ops returns a copy of the calls recorded since the last full-surface fill.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) Frames() int { return r.frames }

// Count returns how many ops of the given kind the current frame holds.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
