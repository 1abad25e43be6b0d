package dinebench

import (
	"fmt"
	"math"
	"time"
)

// SweepPoint is one run of a sweep over table sizes.
type SweepPoint struct {
	Agents     int           `yaml:"agents" json:"agents"`
	Throughput float64       `yaml:"meals_per_sec" json:"meals_per_sec"`
	Stats      Statistics    `yaml:"stats" json:"stats"`
	Elapsed    time.Duration `yaml:"elapsed" json:"elapsed"`
}

// ContentionModel holds Universal Scalability Law coefficients fitted to a
// sweep's meal throughput:
//
//	X(N) = λN / (1 + α(N-1) + βN(N-1))
//
// On a ring at most ⌊N/2⌋ agents dine at once, so α well above zero is
// expected; β > 0 means larger tables lose more than the ring shape explains.
type ContentionModel struct {
	Lambda   float64 `yaml:"lambda" json:"lambda"`     // Meals/sec of a single agent
	Alpha    float64 `yaml:"alpha" json:"alpha"`       // Contention
	Beta     float64 `yaml:"beta" json:"beta"`         // Coherency
	RSquared float64 `yaml:"r_squared" json:"r_squared"` // Goodness of fit
}

// Sweep runs base once per agent count in levels and records throughput and
// hunger statistics for each. Every level is validated before the first run.
func Sweep(base Config, levels []int, opts ...Option) ([]SweepPoint, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one agent count", ErrInvalidConfig)
	}

	cfgs := make([]Config, len(levels))
	for i, n := range levels {
		cfg := base
		cfg.Agents = n
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep level N=%d: %w", n, err)
		}
		cfgs[i] = cfg
	}

	points := make([]SweepPoint, 0, len(levels))
	for _, cfg := range cfgs {
		report, err := Run(cfg, opts...)
		if err != nil {
			return nil, fmt.Errorf("sweep level N=%d: %w", cfg.Agents, err)
		}
		points = append(points, SweepPoint{
			Agents:     cfg.Agents,
			Throughput: float64(report.Meals) / report.Elapsed.Seconds(),
			Stats:      report.Stats,
			Elapsed:    report.Elapsed,
		})
	}
	return points, nil
}

// FitContention fits the USL by linearizing it:
//
//	N/X(N) = 1/λ + (α/λ)(N-1) + (β/λ)N(N-1)
//
// and solving ordinary least squares. A negative β is a fitting artifact of
// noisy data; the fit is then redone with β pinned to zero.
func FitContention(points []SweepPoint) (ContentionModel, error) {
	var rows [][]float64
	var ys []float64
	for _, p := range points {
		if p.Throughput <= 0 {
			continue
		}
		n := float64(p.Agents)
		rows = append(rows, []float64{1, n - 1, n * (n - 1)})
		ys = append(ys, n/p.Throughput)
	}
	if len(rows) < 3 {
		return ContentionModel{}, fmt.Errorf("need at least 3 points with nonzero throughput, got %d", len(rows))
	}

	b, ok := leastSquares(rows, ys)
	if !ok || b[0] == 0 {
		return ContentionModel{}, fmt.Errorf("sweep points are degenerate; use at least 3 distinct agent counts")
	}
	m := ContentionModel{Lambda: 1 / b[0], Alpha: b[1] / b[0], Beta: b[2] / b[0]}

	if m.Beta < 0 {
		for i := range rows {
			rows[i] = rows[i][:2]
		}
		if b, ok := leastSquares(rows, ys); ok && b[0] != 0 {
			m = ContentionModel{Lambda: 1 / b[0], Alpha: b[1] / b[0]}
		}
	}

	m.RSquared = m.rSquared(points)
	return m, nil
}

// Predict returns the modelled throughput at n agents.
func (m ContentionModel) Predict(n int) float64 {
	x := float64(n)
	return m.Lambda * x / (1 + m.Alpha*(x-1) + m.Beta*x*(x-1))
}

// Efficiency is Predict(n) over ideal linear throughput λn.
func (m ContentionModel) Efficiency(n int) float64 {
	ideal := m.Lambda * float64(n)
	if ideal == 0 {
		return 0
	}
	return m.Predict(n) / ideal
}

func (m ContentionModel) rSquared(points []SweepPoint) float64 {
	var mean float64
	for _, p := range points {
		mean += p.Throughput
	}
	mean /= float64(len(points))

	var ssRes, ssTot float64
	for _, p := range points {
		res := p.Throughput - m.Predict(p.Agents)
		dev := p.Throughput - mean
		ssRes += res * res
		ssTot += dev * dev
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}

// leastSquares solves the normal equations XᵀXb = Xᵀy by Gaussian
// elimination with partial pivoting. ok is false for a singular system.
func leastSquares(x [][]float64, y []float64) (b []float64, ok bool) {
	k := len(x[0])

	// Augmented matrix [XᵀX | Xᵀy].
	a := make([][]float64, k)
	for i := range a {
		a[i] = make([]float64, k+1)
		for r := range x {
			for j := 0; j < k; j++ {
				a[i][j] += x[r][i] * x[r][j]
			}
			a[i][k] += x[r][i] * y[r]
		}
	}

	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := col + 1; r < k; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c <= k; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	b = make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		sum := a[i][k]
		for j := i + 1; j < k; j++ {
			sum -= a[i][j] * b[j]
		}
		b[i] = sum / a[i][i]
	}
	return b, true
}
