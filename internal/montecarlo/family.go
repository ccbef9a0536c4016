package montecarlo

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// Family is a samplable distribution.
type Family string

// Supported families
const (
	FamilyNormal    Family = "normal"
	FamilyPoisson   Family = "poisson"
	FamilyBinomial  Family = "binomial"
	FamilyGamma     Family = "gamma"
	FamilyBeta      Family = "beta"
	FamilyLogNormal Family = "lognormal"
)

// Params holds the parameters for every family; only those relevant to the
// chosen family are read.
type Params struct {
	Mean   float64 `json:"mean,omitempty" mapstructure:"mean"`
	StdDev float64 `json:"std_dev,omitempty" mapstructure:"std_dev"`
	Lambda float64 `json:"lambda,omitempty" mapstructure:"lambda"`
	N      int     `json:"n,omitempty" mapstructure:"n"`
	P      float64 `json:"p,omitempty" mapstructure:"p"`
	Shape  float64 `json:"shape,omitempty" mapstructure:"shape"`
	Scale  float64 `json:"scale,omitempty" mapstructure:"scale"`
	Alpha  float64 `json:"alpha,omitempty" mapstructure:"alpha"`
	Beta   float64 `json:"beta,omitempty" mapstructure:"beta"`
}

// Validate checks the family is known and its parameters usable.
func (f Family) Validate(p Params) error {
	switch f {
	case FamilyNormal, FamilyLogNormal:
		if p.StdDev < 0 {
			return fmt.Errorf("%w: %s std_dev %.4f", models.ErrInvalidInput, f, p.StdDev)
		}
	case FamilyPoisson:
		if p.Lambda < 0 {
			return fmt.Errorf("%w: poisson lambda %.4f", models.ErrInvalidInput, p.Lambda)
		}
	case FamilyBinomial:
		if p.N < 0 || p.P < 0 || p.P > 1 {
			return fmt.Errorf("%w: binomial n=%d p=%.4f", models.ErrInvalidInput, p.N, p.P)
		}
	case FamilyGamma:
		if p.Shape <= 0 || p.Scale <= 0 {
			return fmt.Errorf("%w: gamma shape=%.4f scale=%.4f", models.ErrInvalidInput, p.Shape, p.Scale)
		}
	case FamilyBeta:
		if p.Alpha <= 0 || p.Beta <= 0 {
			return fmt.Errorf("%w: beta alpha=%.4f beta=%.4f", models.ErrInvalidInput, p.Alpha, p.Beta)
		}
	default:
		return fmt.Errorf("%w: unknown family %q", models.ErrInvalidInput, f)
	}
	return nil
}

// Draw samples one value from the family.
func (g *Generator) Draw(f Family, p Params) float64 {
	switch f {
	case FamilyNormal:
		return g.Normal(p.Mean, p.StdDev)
	case FamilyPoisson:
		return float64(g.Poisson(p.Lambda))
	case FamilyBinomial:
		return float64(g.Binomial(p.N, p.P))
	case FamilyGamma:
		return g.Gamma(p.Shape, p.Scale)
	case FamilyBeta:
		return g.Beta(p.Alpha, p.Beta)
	case FamilyLogNormal:
		return g.LogNormal(p.Mean, p.StdDev)
	default:
		return 0
	}
}

// FromDescriptor maps a fitted descriptor onto a samplable family.
func FromDescriptor(d models.Descriptor) (Family, Params) {
	switch d.Type {
	case models.FamilyPoisson:
		return FamilyPoisson, Params{Lambda: d.Lambda}
	case models.FamilyBinomial:
		return FamilyBinomial, Params{N: d.N, P: d.P}
	default:
		return FamilyNormal, Params{Mean: d.Mean, StdDev: d.StdDev}
	}
}

// ScaleParams moves the family's location by factor. Beta is bounded and is
// left unchanged.
func ScaleParams(f Family, p Params, factor float64) Params {
	if factor <= 0 || math.IsNaN(factor) {
		return p
	}
	out := p
	switch f {
	case FamilyNormal, FamilyLogNormal:
		out.Mean *= factor
		out.StdDev *= factor
	case FamilyPoisson:
		out.Lambda *= factor
	case FamilyBinomial:
		out.P = stats.Clamp01(p.P * factor)
	case FamilyGamma:
		out.Scale *= factor
	}
	return out
}

// IsDiscrete reports whether draws are integers.
func (f Family) IsDiscrete() bool {
	return f == FamilyPoisson || f == FamilyBinomial
}
