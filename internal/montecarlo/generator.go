// Package montecarlo provides seeded random-variate generation and the
// simulation runs built on it.
package montecarlo

import (
	"math"
	"math/rand"
	"time"
)

const poissonNormalCutover = 30

// Generator owns the random state for one simulation run. It is not safe for
// concurrent use; create one per run.
type Generator struct {
	rng      *rand.Rand
	spare    float64
	hasSpare bool
}

// NewGenerator seeds a generator. A zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value in [0, 1).
func (g *Generator) Uniform() float64 {
	return g.rng.Float64()
}

// StandardNormal draws N(0,1) with Box-Muller, caching the second variate.
func (g *Generator) StandardNormal() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}
	u1 := g.rng.Float64()
	for u1 == 0 {
		u1 = g.rng.Float64()
	}
	u2 := g.rng.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	g.spare = r * math.Sin(theta)
	g.hasSpare = true
	return r * math.Cos(theta)
}

// Normal draws N(mean, stddev²).
func (g *Generator) Normal(mean, stddev float64) float64 {
	if stddev <= 0 {
		return mean
	}
	return mean + stddev*g.StandardNormal()
}

// Poisson uses Knuth's product method below λ=30 and a rounded normal
// approximation above, clamped at zero.
func (g *Generator) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda >= poissonNormalCutover {
		v := math.Round(g.Normal(lambda, math.Sqrt(lambda)))
		if v < 0 {
			return 0
		}
		return int(v)
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= g.rng.Float64()
		if p <= limit {
			return k - 1
		}
	}
}

// Binomial draws by summing n Bernoulli trials.
func (g *Generator) Binomial(n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	count := 0
	for i := 0; i < n; i++ {
		if g.rng.Float64() < p {
			count++
		}
	}
	return count
}

// Bernoulli returns true with probability p.
func (g *Generator) Bernoulli(p float64) bool {
	return g.rng.Float64() < p
}

// Gamma draws Gamma(shape, scale) with Marsaglia-Tsang. Shapes below one
// use the Gamma(shape+1)·U^(1/shape) reduction.
func (g *Generator) Gamma(shape, scale float64) float64 {
	if shape <= 0 || scale <= 0 {
		return 0
	}
	if shape < 1 {
		u := g.rng.Float64()
		return g.Gamma(shape+1, scale) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := g.StandardNormal()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := g.rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// Beta draws Beta(α, β) as X/(X+Y) with X, Y gamma.
func (g *Generator) Beta(alpha, beta float64) float64 {
	x := g.Gamma(alpha, 1)
	y := g.Gamma(beta, 1)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// LogNormal draws a log-normal with the given arithmetic mean and standard
// deviation by moment matching μ and σ of the underlying normal.
func (g *Generator) LogNormal(mean, stddev float64) float64 {
	if mean <= 0 {
		return 0
	}
	if stddev <= 0 {
		return mean
	}
	sigma2 := math.Log(1 + (stddev*stddev)/(mean*mean))
	mu := math.Log(mean) - sigma2/2
	return math.Exp(g.Normal(mu, math.Sqrt(sigma2)))
}
