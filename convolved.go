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

package sed

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/sed/internal/validate"
	"seehuhn.de/go/sed/units"
)

// ConvolvedFluxes holds, for a single filter, the convolved fluxes of an
// ordered set of models, measured at an ordered set of photometric
// apertures.
//
// The model names form the primary axis and must be assigned before the
// flux and error matrices.  When no apertures are defined, the value
// represents total fluxes only and the matrices have a single column.
//
// All fields are accessed through validating setters; the zero value of
// the struct is an empty, valid instance.
type ConvolvedFluxes struct {
	wavelength *units.Scalar
	modelNames []string
	apertures  *units.Vector
	flux       *units.Matrix
	fluxErr    *units.Matrix

	// Derived radii, carried along when present.  These are computed by
	// Write and read back verbatim; they are never an input.
	radiusSigma50 *units.Vector
	radiusCumul99 *units.Vector
}

// New returns an empty ConvolvedFluxes.
func New() *ConvolvedFluxes {
	return &ConvolvedFluxes{}
}

// NewZeroed returns a ConvolvedFluxes with the given model names and
// apertures, and with flux and error matrices filled with zeros in the
// unit u.  Both modelNames and apertures are required.
func NewZeroed(modelNames []string, apertures units.Vector, u units.Unit) (*ConvolvedFluxes, error) {
	if err := validate.NonEmpty(len(modelNames)); err != nil {
		return nil, &ValueError{Field: "model_names", Err: err}
	}
	if err := validate.NonEmpty(apertures.Len()); err != nil {
		return nil, &ValueError{Field: "apertures", Err: err}
	}
	if !units.IsFluxLike(u.Dim) {
		return nil, &TypeError{Field: "flux",
			Msg: "unit should be a unit of luminosity, flux or monochromatic flux density"}
	}

	c := New()
	if err := c.SetModelNames(modelNames); err != nil {
		return nil, err
	}
	if err := c.SetApertures(apertures); err != nil {
		return nil, err
	}
	flux := units.Zeros(c.NModels(), c.NAp(), u)
	errs := units.Zeros(c.NModels(), c.NAp(), u)
	c.flux = &flux
	c.fluxErr = &errs
	return c, nil
}

// Wavelength returns the characteristic wavelength of the filter.  The
// second return value reports whether a wavelength has been set.
func (c *ConvolvedFluxes) Wavelength() (units.Scalar, bool) {
	if c.wavelength == nil {
		return units.Scalar{}, false
	}
	return *c.wavelength, true
}

// SetWavelength sets the characteristic wavelength of the filter.  The
// value must be a strictly positive length.
func (c *ConvolvedFluxes) SetWavelength(w units.Scalar) error {
	if w.Unit.Dim != units.Length {
		return &TypeError{Field: "wavelength",
			Msg: "should be a quantity with units of length"}
	}
	if !(w.Value > 0) {
		return &ValueError{Field: "wavelength", Err: errNotPositive}
	}
	c.wavelength = &w
	return nil
}

// ModelNames returns the names of the models, or nil when no names have
// been set.  The returned slice must not be modified.
func (c *ConvolvedFluxes) ModelNames() []string {
	return c.modelNames
}

// SetModelNames sets the names of the models.  The names form the
// primary axis and must be set before the flux and error matrices.
func (c *ConvolvedFluxes) SetModelNames(names []string) error {
	if names == nil {
		c.modelNames = nil
		return nil
	}
	c.modelNames = slices.Clone(names)
	return nil
}

// Apertures returns the apertures at which the fluxes are defined.  The
// second return value reports whether an aperture axis is present.
func (c *ConvolvedFluxes) Apertures() (units.Vector, bool) {
	if c.apertures == nil {
		return units.Vector{}, false
	}
	return *c.apertures, true
}

// SetApertures sets the apertures at which the fluxes are defined.  The
// values must be strictly positive, strictly increasing lengths.
func (c *ConvolvedFluxes) SetApertures(ap units.Vector) error {
	if ap.Unit.Dim != units.Length {
		return &TypeError{Field: "apertures",
			Msg: "should be a quantity with units of length"}
	}
	if err := validate.Positive(ap.Values); err != nil {
		return &ValueError{Field: "apertures", Err: err}
	}
	if err := validate.Increasing(ap.Values); err != nil {
		return &ValueError{Field: "apertures", Err: err}
	}
	ap = ap.Clone()
	c.apertures = &ap
	return nil
}

// Flux returns the flux matrix.  The second return value reports whether
// fluxes have been set.
func (c *ConvolvedFluxes) Flux() (units.Matrix, bool) {
	if c.flux == nil {
		return units.Matrix{}, false
	}
	return *c.flux, true
}

// SetFlux sets the flux matrix.  The model names must already be set,
// the unit must be a unit of luminosity, flux or monochromatic flux
// density, and the shape must be (NModels, NAp).
func (c *ConvolvedFluxes) SetFlux(flux units.Matrix) error {
	m, err := c.checkFluxLike("flux", flux)
	if err != nil {
		return err
	}
	c.flux = m
	return nil
}

// FluxErr returns the flux uncertainty matrix.  The second return value
// reports whether uncertainties have been set.
func (c *ConvolvedFluxes) FluxErr() (units.Matrix, bool) {
	if c.fluxErr == nil {
		return units.Matrix{}, false
	}
	return *c.fluxErr, true
}

// SetFluxErr sets the flux uncertainty matrix, subject to the same
// constraints as SetFlux.
func (c *ConvolvedFluxes) SetFluxErr(errs units.Matrix) error {
	m, err := c.checkFluxLike("error", errs)
	if err != nil {
		return err
	}
	c.fluxErr = m
	return nil
}

func (c *ConvolvedFluxes) checkFluxLike(field string, m units.Matrix) (*units.Matrix, error) {
	if c.modelNames == nil {
		return nil, ErrModelNamesNotSet
	}
	if !units.IsFluxLike(m.Unit.Dim) {
		return nil, &TypeError{Field: field,
			Msg: "should be a quantity with units of luminosity, flux or monochromatic flux density"}
	}
	rows, cols := m.Dims()
	if err := validate.Shape(rows, cols, c.NModels(), c.NAp()); err != nil {
		return nil, &ValueError{Field: field, Err: err}
	}
	m = m.Clone()
	return &m, nil
}

// RadiusSigma50 returns the 50% peak surface brightness radii, when
// present.  The radii are present after reading a file which contains
// them, or after interpolating from an instance which carries them.
func (c *ConvolvedFluxes) RadiusSigma50() (units.Vector, bool) {
	if c.radiusSigma50 == nil {
		return units.Vector{}, false
	}
	return *c.radiusSigma50, true
}

// RadiusCumul99 returns the 99% cumulative flux radii, when present.
func (c *ConvolvedFluxes) RadiusCumul99() (units.Vector, bool) {
	if c.radiusCumul99 == nil {
		return units.Vector{}, false
	}
	return *c.radiusCumul99, true
}

// NModels returns the number of models, or 0 when the model names have
// not been set.
func (c *ConvolvedFluxes) NModels() int {
	return len(c.modelNames)
}

// NAp returns the number of apertures.  When no aperture axis is
// defined the value represents total fluxes and NAp returns 1.
func (c *ConvolvedFluxes) NAp() int {
	if c.apertures == nil {
		return 1
	}
	return c.apertures.Len()
}

// Equal reports whether c and other hold the same wavelength, model
// names, apertures, fluxes and errors.  Quantities are compared
// element-wise after unit conversion.
func (c *ConvolvedFluxes) Equal(other *ConvolvedFluxes) bool {
	if (c.wavelength == nil) != (other.wavelength == nil) {
		return false
	}
	if c.wavelength != nil && !c.wavelength.Equal(*other.wavelength) {
		return false
	}
	if !slices.Equal(c.modelNames, other.modelNames) {
		return false
	}
	if (c.apertures == nil) != (other.apertures == nil) {
		return false
	}
	if c.apertures != nil && !c.apertures.Equal(*other.apertures) {
		return false
	}
	if (c.flux == nil) != (other.flux == nil) {
		return false
	}
	if c.flux != nil && !c.flux.Equal(*other.flux) {
		return false
	}
	if (c.fluxErr == nil) != (other.fluxErr == nil) {
		return false
	}
	if c.fluxErr != nil && !c.fluxErr.Equal(*other.fluxErr) {
		return false
	}
	return true
}
