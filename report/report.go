// Package report defines the numeric payloads handed to the two external
// collaborators of the analysis packages: a rendering collaborator, which
// receives x/y series, confidence bands and labels, and a tabular-report
// collaborator, which receives structured rows. The library never renders or
// formats anything itself; styling belongs entirely to the collaborator.
package report

import "strconv"

// Series is a labeled x/y line or scatter series.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Band is a labeled confidence band around a series.
type Band struct {
	Label string
	X     []float64
	Lower []float64
	Upper []float64
}

// Figure is the full numeric description of one plot: line series, scatter
// points and confidence bands, plus the axis labels a renderer needs.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Series
	Points []Series
	Bands  []Band
}

// Table is a column-labeled grid of formatted cells. Cells left empty are
// genuinely absent values (e.g. censored rows), not zeros.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Renderer consumes figures. Implemented by the plotting collaborator.
type Renderer interface {
	Render(fig Figure) error
}

// TableWriter consumes tables. Implemented by the reporting collaborator.
type TableWriter interface {
	Write(tbl Table) error
}

// Cell formats a value for a table cell.
func Cell(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
