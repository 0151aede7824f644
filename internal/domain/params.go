package domain

import "fmt"

// Parameters holds the physical DNA constants used to lay out helix geometry.
// Lengths are in nanometers, angles in degrees. A Parameters value is never
// mutated once a structure has been built from it.
type Parameters struct {
	HelixDiameter    float64 `mapstructure:"helix_diameter"`
	HelixDistance    float64 `mapstructure:"helix_distance"`
	BaseRise         float64 `mapstructure:"base_rise"`
	HoneycombTwist   float64 `mapstructure:"honeycomb_twist"`
	SquareTwist      float64 `mapstructure:"square_twist"`
	MinorGrooveAngle float64 `mapstructure:"minor_groove_angle"`
}

// DefaultParameters returns B-form DNA constants as used by caDNAno/CanDo
func DefaultParameters() Parameters {
	return Parameters{
		HelixDiameter:    2.0,
		HelixDistance:    2.25,
		BaseRise:         0.34,
		HoneycombTwist:   360.0 / 10.5,
		SquareTwist:      33.75,
		MinorGrooveAngle: 150.0,
	}
}

// HelixRadius returns the radius of the backbone circle
func (p Parameters) HelixRadius() float64 {
	return p.HelixDiameter / 2
}

// Twist returns the twist per base pair for a lattice
func (p Parameters) Twist(l Lattice) float64 {
	if l == LatticeSquare {
		return p.SquareTwist
	}
	return p.HoneycombTwist
}

// Validate checks that every constant is usable
func (p Parameters) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"helix_diameter", p.HelixDiameter},
		{"helix_distance", p.HelixDistance},
		{"base_rise", p.BaseRise},
		{"honeycomb_twist", p.HoneycombTwist},
		{"square_twist", p.SquareTwist},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("parameter %s must be positive, got %g", c.name, c.value)
		}
	}
	if p.HelixDiameter > p.HelixDistance {
		return fmt.Errorf("helix_diameter %g exceeds helix_distance %g", p.HelixDiameter, p.HelixDistance)
	}
	return nil
}
