// Package graphics implements the PDF graphics state: the transform
// matrix algebra, the full state record (CTM, colour, line style, clip,
// text state) and its q/Q stack, and the path geometry path-construction
// operators build and painting operators consume.
package graphics

// Matrix is a 3x3 transform matrix (last row implicitly 0,0,1), stored
// as [a b c d e f] the way PDF's `cm`/`Tm` operands and /Matrix entries
// list them.
type Matrix [6]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Mult composes a then b: a point transformed by a.Mult(b) is the same
// as transforming it by a and then by b, matching PDF's row-vector
// convention (new CTM = operand matrix × current CTM).
func (a Matrix) Mult(b Matrix) Matrix {
	return Matrix{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// Apply transforms the point (x, y) by m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Translation returns a pure-translation matrix, the shape `Td`/`TD`
// build before composing onto the text line matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}
