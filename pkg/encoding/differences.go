package encoding

// Differences applies a PDF /Differences array on top of a base encoding.
// The array alternates a starting code (int) with a run of glyph names
// applied to consecutive codes from there; ApplyDifference advances the
// current code itself so callers just feed it the array in order.
type Differences struct {
	table Table
	code  int
}

// NewDifferences starts a patch of base. base is cloned so the shared
// package-level tables are never mutated.
func NewDifferences(base Table) *Differences {
	return &Differences{table: base.Clone()}
}

// SetCode starts (or restarts) a run at code, as a bare integer entry in
// the /Differences array does.
func (d *Differences) SetCode(code int) {
	d.code = code
}

// Name assigns the next glyph name in the current run and advances the
// run's code by one, as consecutive name entries in /Differences do.
func (d *Differences) Name(glyphName string) {
	d.table[d.code] = glyphName
	d.code++
}

// Table returns the patched encoding.
func (d *Differences) Table() Table {
	return d.table
}
