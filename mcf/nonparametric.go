package mcf

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/internal/options"
	"github.com/arloliu/repairable/report"
)

// State tags a merged-table row as a failure/repair event or a retirement.
type State uint8

const (
	// StateFailure marks a repair event.
	StateFailure State = 0x1
	// StateCensored marks a retirement (right-censoring) event.
	StateCensored State = 0x2
)

func (s State) String() string {
	switch s {
	case StateFailure:
		return "F"
	case StateCensored:
		return "C"
	default:
		return "Unknown"
	}
}

// Observation is the MCF estimate attached to a failure row.
type Observation struct {
	MCF      float64
	Variance float64
	Lower    float64
	Upper    float64
}

// Row is one entry of the merged event table. Observed is nil at censored
// rows: a retirement carries no MCF estimate, not a zero one.
type Row struct {
	Time     float64
	State    State
	Observed *Observation
}

// NonparametricResult holds the full annotated event table together with
// the failure-only projections used by rendering and downstream fitting.
type NonparametricResult struct {
	// Rows is the merged event table, ordered by time ascending with
	// failures before retirements at equal times.
	Rows []Row

	// Failure-only projections of Rows, index-aligned with each other.
	Times    []float64
	MCF      []float64
	Variance []float64
	Lower    []float64
	Upper    []float64

	// ConfidenceLevel is the level the one-sided bounds were computed at.
	ConfidenceLevel float64

	lastTime float64 // latest retirement, closes the staircase
}

// event is a merged-table entry prior to estimation.
type event struct {
	time  float64
	state State
}

// Nonparametric computes the censored-data Mean Cumulative Function
// estimator across one or more systems.
//
// Within each system the largest time is treated as the retirement time and
// all prior values as repair events. The merged table is walked in time
// order (failures before same-time retirements) with a running number at
// risk r: each failure contributes 1/r to the MCF, each retirement
// decrements r. Log-normal one-sided confidence bounds are derived from the
// accumulated variance.
//
// Returns a validation error when the input is empty, contains non-positive
// values, has no repair events at all, or when the latest retirement
// precedes the latest repair.
func Nonparametric(in Input, opts ...Option) (*NonparametricResult, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	systems, err := in.validate()
	if err != nil {
		return nil, err
	}

	events, numSystems, err := mergeEvents(systems)
	if err != nil {
		return nil, err
	}

	// One-sided Z for the log-normal bounds.
	z := -distuv.UnitNormal.Quantile(1 - cfg.CI)

	res := &NonparametricResult{
		Rows:            make([]Row, 0, len(events)),
		ConfidenceLevel: cfg.CI,
	}

	r := numSystems // number of systems still at risk
	cum := 0.0
	cumVar := 0.0
	for _, ev := range events {
		if ev.state == StateCensored {
			r--
			res.Rows = append(res.Rows, Row{Time: ev.time, State: StateCensored})
			if ev.time > res.lastTime {
				res.lastTime = ev.time
			}

			continue
		}

		// Failure row. A leading run of retirements leaves the running
		// estimate absent, so the first failure is computed from scratch
		// with whatever r remains, not added to an undefined prior.
		rInv := 1 / float64(r)
		cum += rInv
		cumVar += rInv * rInv * ((1-rInv)*(1-rInv) + float64(r-1)*rInv*rInv)

		obs := &Observation{MCF: cum, Variance: cumVar}
		spread := math.Exp(z * math.Sqrt(cumVar) / cum)
		obs.Lower = cum / spread
		obs.Upper = cum * spread

		res.Rows = append(res.Rows, Row{Time: ev.time, State: StateFailure, Observed: obs})
		res.Times = append(res.Times, ev.time)
		res.MCF = append(res.MCF, obs.MCF)
		res.Variance = append(res.Variance, obs.Variance)
		res.Lower = append(res.Lower, obs.Lower)
		res.Upper = append(res.Upper, obs.Upper)
	}

	return res, nil
}

// mergeEvents builds the merged event table from sorted per-system
// histories: each system's last value becomes a censoring event, the rest
// failures. Rows are ordered by time ascending with failures before
// same-time censorings, so a failure is counted before the retirement that
// shares its timestamp is applied.
func mergeEvents(systems [][]float64) ([]event, int, error) {
	events := make([]event, 0, totalLen(systems))
	maxRepair := math.Inf(-1)
	maxEnd := math.Inf(-1)
	failures := 0
	for _, system := range systems {
		last := len(system) - 1
		for i, t := range system {
			if i < last {
				events = append(events, event{time: t, state: StateFailure})
				failures++
				if t > maxRepair {
					maxRepair = t
				}
			} else {
				events = append(events, event{time: t, state: StateCensored})
				if t > maxEnd {
					maxEnd = t
				}
			}
		}
	}

	if failures == 0 {
		return nil, 0, fmt.Errorf("%w: no repair events across any system", errs.ErrTooFewEvents)
	}
	if maxEnd < maxRepair {
		return nil, 0, fmt.Errorf("%w: last retirement %v < last repair %v", errs.ErrRetireBeforeRepair, maxEnd, maxRepair)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].time != events[j].time {
			return events[i].time < events[j].time
		}

		return events[i].state == StateFailure && events[j].state == StateCensored
	})

	return events, len(systems), nil
}

func totalLen(systems [][]float64) int {
	n := 0
	for _, s := range systems {
		n += len(s)
	}

	return n
}

// Table builds the annotated event table for the tabular collaborator.
// Censored rows carry empty estimate cells.
func (r *NonparametricResult) Table() report.Table {
	tbl := report.Table{
		Columns: []string{"state", "time", "MCF_lower", "MCF", "MCF_upper", "variance"},
		Rows:    make([][]string, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		cells := []string{row.State.String(), report.Cell(row.Time), "", "", "", ""}
		if row.Observed != nil {
			cells[2] = report.Cell(row.Observed.Lower)
			cells[3] = report.Cell(row.Observed.MCF)
			cells[4] = report.Cell(row.Observed.Upper)
			cells[5] = report.Cell(row.Observed.Variance)
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	return tbl
}

// Figure builds the staircase MCF payload for the rendering collaborator,
// including the one-sided confidence band.
func (r *NonparametricResult) Figure() report.Figure {
	x, y := stepSeries(r.Times, r.MCF, r.lastTime)
	_, lower := stepSeries(r.Times, r.Lower, r.lastTime)
	_, upper := stepSeries(r.Times, r.Upper, r.lastTime)

	return report.Figure{
		Title:  "Non-parametric estimate of the Mean Cumulative Function",
		XLabel: "Time",
		YLabel: "Mean cumulative number of failures",
		Lines: []report.Series{
			{Label: "MCF", X: x, Y: y},
		},
		Bands: []report.Band{
			{Label: "confidence bounds", X: x, Lower: lower, Upper: upper},
		},
	}
}

// stepSeries expands failure-time points into the staircase polyline that
// starts at zero and holds each level until the next failure, closed by a
// final horizontal run to lastTime.
func stepSeries(times, values []float64, lastTime float64) (x, y []float64) {
	if len(times) == 0 {
		return nil, nil
	}

	x = make([]float64, 0, 2*len(times)+2)
	y = make([]float64, 0, 2*len(times)+2)
	x = append(x, 0, times[0])
	y = append(y, 0, 0)
	for i, t := range times {
		if i > 0 {
			x = append(x, t)
			y = append(y, values[i-1])
		}
		x = append(x, t)
		y = append(y, values[i])
	}
	x = append(x, lastTime)
	y = append(y, values[len(values)-1])

	return x, y
}

// sortFloats sorts in place, ascending.
func sortFloats(values []float64) {
	sort.Float64s(values)
}
