package analytics

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultDraws is the number of Monte-Carlo samples per estimate.
	DefaultDraws = 10000
	// DefaultConfidence is the VaR confidence level.
	DefaultConfidence = 0.95
)

// VaRSimulator estimates one-day value-at-risk by Monte-Carlo sampling of a
// normal daily-return model. Losses are signed so that simulated gains come
// out negative; the reported quantile is the order statistic at
// floor((1-confidence)*draws) of the ascending loss array.
type VaRSimulator struct {
	mu         sync.Mutex
	draws      int
	confidence float64
	src        rand.Source
}

// NewVaRSimulator creates a simulator with the default draw count and
// confidence level.
func NewVaRSimulator() *VaRSimulator {
	return &VaRSimulator{
		draws:      DefaultDraws,
		confidence: DefaultConfidence,
	}
}

// Seed pins the random source so runs are reproducible.
func (s *VaRSimulator) Seed(seed uint64) {
	s.mu.Lock()
	s.src = rand.NewSource(seed)
	s.mu.Unlock()
}

// ValueAtRisk simulates one-day losses on the given notional and returns the
// loss quantile at the configured confidence level.
func (s *VaRSimulator) ValueAtRisk(meanReturn, volatility, currentValue float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	dist := distuv.Normal{Mu: meanReturn, Sigma: volatility, Src: s.src}

	losses := make([]float64, s.draws)
	for i := range losses {
		simulatedReturn := dist.Rand()
		simulatedValue := currentValue * (1 + simulatedReturn)
		losses[i] = currentValue - simulatedValue
	}

	sort.Float64s(losses)
	idx := int(math.Floor((1 - s.confidence) * float64(s.draws)))
	return losses[idx]
}
