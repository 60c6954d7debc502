package graphics

// SegmentOp identifies which kind of path segment a Segment holds.
type SegmentOp int

const (
	SegMoveTo SegmentOp = iota
	SegLineTo
	SegCurveTo // cubic Bezier, Points holds the two control points and the endpoint
	SegClose
)

// Segment is one piece of a subpath, in already-device/user-space
// coordinates (the interpreter applies the CTM before appending).
type Segment struct {
	Op     SegmentOp
	Points [3][2]float64 // used positions depend on Op: MoveTo/LineTo use [0], CurveTo uses all three
}

// Subpath is a maximal run of segments starting at a MoveTo.
type Subpath []Segment

// Path accumulates subpaths built by the path-construction operators
// (m l c v y re h) between a painting operator and the next one, plus
// the current point and start point `m`/`h` need.
type Path struct {
	Subpaths []Subpath

	hasCurrent         bool
	currentX, currentY float64
	startX, startY     float64
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Subpaths = append(p.Subpaths, Subpath{{Op: SegMoveTo, Points: [3][2]float64{{x, y}}}})
	p.currentX, p.currentY = x, y
	p.startX, p.startY = x, y
	p.hasCurrent = true
}

// LineTo appends a straight segment to (x, y). If there is no current
// subpath (malformed content stream), it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	p.append(Segment{Op: SegLineTo, Points: [3][2]float64{{x, y}}})
	p.currentX, p.currentY = x, y
}

// CurveTo appends a cubic Bezier segment with the two given control
// points and endpoint (x3, y3).
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.hasCurrent {
		p.MoveTo(x1, y1)
	}
	p.append(Segment{Op: SegCurveTo, Points: [3][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}})
	p.currentX, p.currentY = x3, y3
}

// Rect appends a closed rectangle subpath, the shape `re` builds.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Close appends a closing segment back to the subpath's start point.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.append(Segment{Op: SegClose, Points: [3][2]float64{{p.startX, p.startY}}})
	p.currentX, p.currentY = p.startX, p.startY
}

// Current returns the current point and whether one is set.
func (p *Path) Current() (x, y float64, ok bool) {
	return p.currentX, p.currentY, p.hasCurrent
}

func (p *Path) append(s Segment) {
	if len(p.Subpaths) == 0 {
		p.Subpaths = append(p.Subpaths, Subpath{})
	}
	i := len(p.Subpaths) - 1
	p.Subpaths[i] = append(p.Subpaths[i], s)
}

// FillRule selects the rule painting operators use to decide a point's
// membership in a self-intersecting or multi-subpath fill region.
type FillRule int

const (
	NonZeroWinding FillRule = iota
	EvenOdd
)
