package models

import "fmt"

// Family names a parametric distribution.
type Family string

// Supported families
const (
	FamilyNormal   Family = "normal"
	FamilyPoisson  Family = "poisson"
	FamilyBinomial Family = "binomial"
)

// Summary holds the sample moments a descriptor was fitted from.
type Summary struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Count    int     `json:"count"`
}

// Descriptor identifies a fitted distribution and its parameters. Only the
// fields for Type are meaningful.
type Descriptor struct {
	Type    Family  `json:"type"`
	Mean    float64 `json:"mean,omitempty"`
	StdDev  float64 `json:"std_dev,omitempty"`
	Lambda  float64 `json:"lambda,omitempty"`
	N       int     `json:"n,omitempty"`
	P       float64 `json:"p,omitempty"`
	Summary Summary `json:"summary"`
}

// NormalDescriptor builds a normal descriptor.
func NormalDescriptor(mean, stddev float64) Descriptor {
	return Descriptor{Type: FamilyNormal, Mean: mean, StdDev: stddev}
}

// PoissonDescriptor builds a Poisson descriptor.
func PoissonDescriptor(lambda float64) Descriptor {
	return Descriptor{Type: FamilyPoisson, Lambda: lambda}
}

// BinomialDescriptor builds a binomial descriptor.
func BinomialDescriptor(n int, p float64) Descriptor {
	return Descriptor{Type: FamilyBinomial, N: n, P: p}
}

// Validate enforces parameter consistency for the family.
func (d Descriptor) Validate() error {
	switch d.Type {
	case FamilyNormal:
		if d.StdDev < 0 {
			return fmt.Errorf("%w: normal std_dev %.4f is negative", ErrInvalidInput, d.StdDev)
		}
	case FamilyPoisson:
		if d.Lambda < 0 {
			return fmt.Errorf("%w: poisson lambda %.4f is negative", ErrInvalidInput, d.Lambda)
		}
	case FamilyBinomial:
		if d.N < 0 {
			return fmt.Errorf("%w: binomial n %d is negative", ErrInvalidInput, d.N)
		}
		if d.P < 0 || d.P > 1 {
			return fmt.Errorf("%w: binomial p %.4f outside [0,1]", ErrInvalidInput, d.P)
		}
	default:
		return fmt.Errorf("%w: unknown distribution type %q", ErrInvalidInput, d.Type)
	}
	return nil
}

// Center returns the distribution mean from its parameters.
func (d Descriptor) Center() float64 {
	switch d.Type {
	case FamilyPoisson:
		return d.Lambda
	case FamilyBinomial:
		return float64(d.N) * d.P
	default:
		return d.Mean
	}
}
