package learning

import (
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/features"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"log"
	"math"
	"math/rand"
)

const (
	// Hinge is the standard SVM loss, max(0, 1 - y f(x)).
	Hinge = "hinge"
	// SquaredHinge is the square of the hinge loss.
	SquaredHinge = "squared_hinge"
)

// SVMParams are the hyper-parameters of a LinearSVC.
type SVMParams struct {
	C                float64 `json:"c"`
	Loss             string  `json:"loss"`
	Tol              float64 `json:"tol"`
	MaxIter          int     `json:"max_iter"`
	Balanced         bool    `json:"balanced"`
	Seed             int64   `json:"seed"`
	InterceptScaling float64 `json:"intercept_scaling"`
}

// DefaultSVMParams are the usual liblinear defaults.
var DefaultSVMParams = SVMParams{
	C:                1,
	Loss:             SquaredHinge,
	Tol:              1e-4,
	MaxIter:          1000,
	Seed:             42,
	InterceptScaling: 1,
}

// LinearSVC is an L2-regularised linear support vector classifier trained with dual coordinate
// descent (Hsieh et al., 2008). The intercept is learnt as the weight of a constant feature.
type LinearSVC struct {
	Params     SVMParams `json:"params"`
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`

	// Progress shows a progress bar over solver iterations.
	Progress bool `json:"-"`
}

// NewLinearSVC creates an untrained classifier.
func NewLinearSVC(p SVMParams) *LinearSVC {
	return &LinearSVC{Params: p}
}

// ClassWeights returns the per-class multiplier of C. Balanced weights are inversely proportional
// to class frequency, n / (2 n_c).
func ClassWeights(y []int, balanced bool) [2]float64 {
	if !balanced {
		return [2]float64{1, 1}
	}
	var counts [2]float64
	for _, c := range y {
		counts[c]++
	}
	n := float64(len(y))
	var w [2]float64
	for c := range w {
		if counts[c] > 0 {
			w[c] = n / (2 * counts[c])
		}
	}
	return w
}

// Fit trains the classifier. Coordinates are visited in a random order seeded by Params.Seed, so
// the same data and seed always produce the same weights.
func (m *LinearSVC) Fit(x features.Matrix, y []int) error {
	p := m.Params
	if len(y) != x.Len() {
		return errors.Errorf("%d rows but %d classes", x.Len(), len(y))
	}
	if p.C <= 0 {
		return errors.Errorf("C must be positive, got %v", p.C)
	}
	var seen [2]bool
	for _, c := range y {
		if c != 0 && c != 1 {
			return errors.Errorf("class %d is not binary", c)
		}
		seen[c] = true
	}
	if !seen[0] || !seen[1] {
		return errors.New("training data must contain both classes")
	}

	n := x.Len()
	weights := ClassWeights(y, p.Balanced)
	B := p.InterceptScaling

	diag := make([]float64, n)
	upper := make([]float64, n)
	sign := make([]float64, n)
	qd := make([]float64, n)
	for i, c := range y {
		ci := p.C * weights[c]
		switch p.Loss {
		case SquaredHinge, "":
			diag[i] = 0.5 / ci
			upper[i] = math.Inf(1)
		case Hinge:
			upper[i] = ci
		default:
			return errors.Errorf("unknown loss %q", p.Loss)
		}
		sign[i] = -1
		if c == 1 {
			sign[i] = 1
		}
		qd[i] = diag[i] + x.Rows[i].SquaredNorm() + B*B
	}

	w := make([]float64, x.Cols)
	var b float64
	alpha := make([]float64, n)
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	rng := rand.New(rand.NewSource(p.Seed))

	var bar *pb.ProgressBar
	if m.Progress {
		bar = pb.StartNew(p.MaxIter)
		bar.Prefix("svm")
	}

	iter := 0
	converged := false
	for iter < p.MaxIter {
		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		rng.Shuffle(n, func(i, j int) {
			index[i], index[j] = index[j], index[i]
		})

		for _, i := range index {
			row := x.Rows[i]
			G := sign[i]*(row.Dot(w)+b*B) - 1 + alpha[i]*diag[i]

			var pg float64
			switch {
			case alpha[i] == 0:
				if G < 0 {
					pg = G
				}
			case alpha[i] == upper[i]:
				if G > 0 {
					pg = G
				}
			default:
				pg = G
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Min(math.Max(alpha[i]-G/qd[i], 0), upper[i])
				d := (alpha[i] - old) * sign[i]
				row.AddTo(w, d)
				b += d * B
			}
		}
		iter++
		if bar != nil {
			bar.Increment()
		}
		if pgMax-pgMin <= p.Tol {
			converged = true
			break
		}
	}
	if bar != nil {
		bar.Finish()
	}
	if !converged {
		log.Printf("linear svm did not converge after %d iterations; consider increasing the iteration limit", iter)
	}

	m.Weights = w
	m.Bias = b * B
	m.Iterations = iter
	m.Converged = converged
	return nil
}

// Decision computes w.x + b.
func (m *LinearSVC) Decision(x features.Vector) float64 {
	return x.Dot(m.Weights) + m.Bias
}

// Predict assigns class 1 to vectors with a positive decision value.
func (m *LinearSVC) Predict(x features.Vector) int {
	if m.Decision(x) > 0 {
		return 1
	}
	return 0
}

// Output writes the trained classifier as JSON.
func (m *LinearSVC) Output(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

// ReadLinearSVC reads a classifier written with Output.
func ReadLinearSVC(r io.Reader) (*LinearSVC, error) {
	var m LinearSVC
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model has no weights")
	}
	return &m, nil
}
