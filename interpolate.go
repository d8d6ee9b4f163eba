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
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/sed/internal/validate"
	"seehuhn.de/go/sed/units"
)

// Interpolate returns a new ConvolvedFluxes with the fluxes resampled
// onto the given apertures.  The result shares the wavelength and model
// names with c but owns its own matrices; c is not modified, and neither
// is the argument.
//
// Requested apertures above the largest tabulated aperture are clamped
// to the largest aperture.  Requested apertures below the smallest
// tabulated aperture cause an ErrApertureTooSmall error.  Between
// tabulated apertures the flux is interpolated linearly, per model; the
// error matrix is resampled the same way, which is only an
// approximation.
//
// When c has no aperture axis, the single total flux value of each model
// is broadcast to every requested aperture.
func (c *ConvolvedFluxes) Interpolate(apertures units.Vector) (*ConvolvedFluxes, error) {
	if c.modelNames == nil {
		return nil, ErrModelNamesNotSet
	}
	if c.flux == nil || c.fluxErr == nil {
		return nil, ErrFluxNotSet
	}
	if apertures.Unit.Dim != units.Length {
		return nil, &TypeError{Field: "apertures",
			Msg: "should be a quantity with units of length"}
	}
	if err := validate.NonEmpty(apertures.Len()); err != nil {
		return nil, &ValueError{Field: "apertures", Err: err}
	}

	res := New()
	if c.wavelength != nil {
		w := *c.wavelength
		res.wavelength = &w
	}
	if err := res.SetModelNames(c.modelNames); err != nil {
		return nil, err
	}

	n := c.NModels()
	nt := apertures.Len()
	target := apertures.Clone()

	if c.NAp() > 1 {
		// Interpolation happens in the unit of the tabulated apertures;
		// the requested apertures keep their own unit in the result.
		factor, err := target.Unit.Factor(c.apertures.Unit)
		if err != nil {
			return nil, &TypeError{Field: "apertures", Msg: err.Error()}
		}
		xs := make([]float64, nt)
		for i, v := range target.Values {
			xs[i] = v * factor
		}

		max := c.apertures.Max()
		min := c.apertures.Min()
		for i, x := range xs {
			if x > max {
				xs[i] = max
				target.Values[i] = max / factor
			}
		}
		for _, x := range xs {
			if x < min {
				return nil, ErrApertureTooSmall
			}
		}

		flux := mat.NewDense(n, nt, nil)
		errs := mat.NewDense(n, nt, nil)
		row := make([]float64, c.NAp())
		var pl interp.PiecewiseLinear
		for im := 0; im < n; im++ {
			c.flux.Row(row, im)
			if err := pl.Fit(c.apertures.Values, row); err != nil {
				return nil, &ValueError{Field: "apertures", Err: err}
			}
			for j, x := range xs {
				flux.Set(im, j, pl.Predict(x))
			}

			c.fluxErr.Row(row, im)
			if err := pl.Fit(c.apertures.Values, row); err != nil {
				return nil, &ValueError{Field: "apertures", Err: err}
			}
			for j, x := range xs {
				errs.Set(im, j, pl.Predict(x))
			}
		}

		res.apertures = &target
		res.flux = &units.Matrix{Data: flux, Unit: c.flux.Unit}
		res.fluxErr = &units.Matrix{Data: errs, Unit: c.fluxErr.Unit}
	} else {
		// Total fluxes only: broadcast the single value.
		flux := mat.NewDense(n, nt, nil)
		errs := mat.NewDense(n, nt, nil)
		for im := 0; im < n; im++ {
			f := c.flux.At(im, 0)
			e := c.fluxErr.At(im, 0)
			for j := 0; j < nt; j++ {
				flux.Set(im, j, f)
				errs.Set(im, j, e)
			}
		}

		res.apertures = &target
		res.flux = &units.Matrix{Data: flux, Unit: c.flux.Unit}
		res.fluxErr = &units.Matrix{Data: errs, Unit: c.fluxErr.Unit}
	}

	// Derived radii are carried over by value when present.  They refer
	// to the source apertures and are not recomputed.
	if c.radiusSigma50 != nil {
		r := c.radiusSigma50.Clone()
		res.radiusSigma50 = &r
	}
	if c.radiusCumul99 != nil {
		r := c.radiusCumul99.Clone()
		res.radiusCumul99 = &r
	}

	return res, nil
}
