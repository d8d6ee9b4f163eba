// seehuhn.de/go/sed - convolved model fluxes for SED fitting
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package units implements physical quantities for photometry.
//
// A quantity pairs numeric data with a [Unit].  Three shapes of data are
// supported: [Scalar], [Vector] and [Matrix].  Units are converted
// explicitly, using the To methods; quantities with incompatible
// dimensions cannot be converted into each other.
//
// The set of units is fixed and small: the lengths and flux units which
// occur in convolved model flux files.
package units

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Dim identifies a physical dimension.
type Dim int

const (
	Dimensionless Dim = iota
	Length
	Power
	Flux
	FluxDensity
)

func (d Dim) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case Length:
		return "length"
	case Power:
		return "power"
	case Flux:
		return "flux"
	case FluxDensity:
		return "flux density"
	default:
		return fmt.Sprintf("Dim(%d)", int(d))
	}
}

// IsFluxLike reports whether d is one of the dimensions a convolved flux
// may carry: power (luminosity), flux, or monochromatic flux density.
func IsFluxLike(d Dim) bool {
	return d == Power || d == Flux || d == FluxDensity
}

// Unit describes a physical unit.  Scale is the factor which converts a
// value in this unit to the base unit of the dimension (metres, watts,
// W/m2, and Jansky, respectively).
type Unit struct {
	Name  string
	Dim   Dim
	Scale float64
}

// The units understood by this package.
var (
	Metre  = Unit{Name: "m", Dim: Length, Scale: 1}
	Cm     = Unit{Name: "cm", Dim: Length, Scale: 1e-2}
	Micron = Unit{Name: "um", Dim: Length, Scale: 1e-6}
	AU     = Unit{Name: "au", Dim: Length, Scale: 1.495978707e11}

	Watt    = Unit{Name: "W", Dim: Power, Scale: 1}
	ErgPerS = Unit{Name: "erg/s", Dim: Power, Scale: 1e-7}
	LSun    = Unit{Name: "Lsun", Dim: Power, Scale: 3.828e26}

	WattPerM2   = Unit{Name: "W/m2", Dim: Flux, Scale: 1}
	ErgPerCm2S  = Unit{Name: "erg/(cm2 s)", Dim: Flux, Scale: 1e-3}
	Jansky      = Unit{Name: "Jy", Dim: FluxDensity, Scale: 1}
	MilliJansky = Unit{Name: "mJy", Dim: FluxDensity, Scale: 1e-3}
)

var registry = map[string]Unit{
	"m":            Metre,
	"cm":           Cm,
	"um":           Micron,
	"micron":       Micron,
	"au":           AU,
	"AU":           AU,
	"W":            Watt,
	"erg/s":        ErgPerS,
	"erg s-1":      ErgPerS,
	"Lsun":         LSun,
	"W/m2":         WattPerM2,
	"erg/(cm2 s)":  ErgPerCm2S,
	"erg cm-2 s-1": ErgPerCm2S,
	"Jy":           Jansky,
	"mJy":          MilliJansky,
}

// Parse returns the unit with the given name.  The names returned by
// [Unit.String] can always be parsed back, so that unit metadata in
// files round-trips.
func Parse(name string) (Unit, error) {
	if u, ok := registry[strings.TrimSpace(name)]; ok {
		return u, nil
	}
	known := maps.Keys(registry)
	sort.Strings(known)
	return Unit{}, fmt.Errorf("unknown unit %q (known units: %s)",
		name, strings.Join(known, ", "))
}

func (u Unit) String() string {
	return u.Name
}

// Factor returns the factor which converts values in u to values in to.
// The dimensions of the two units must agree.
func (u Unit) Factor(to Unit) (float64, error) {
	if u.Dim != to.Dim {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)",
			u, u.Dim, to, to.Dim)
	}
	return u.Scale / to.Scale, nil
}
