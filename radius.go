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
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/sed/units"
)

// FindRadiusCumul finds, for each model, the aperture at which the
// cumulative flux first reaches the given fraction of the flux at the
// largest aperture.  The radius is found by linear interpolation between
// the two bracketing apertures; below the first aperture the first
// aperture is returned, at or above the total flux the last aperture.
//
// The result is one length per model, in astronomical units.  When no
// apertures are defined, a vector of zeros is returned.
func (c *ConvolvedFluxes) FindRadiusCumul(fraction float64) (units.Vector, error) {
	log.Info("calculating radii containing fraction of the flux",
		zap.Float64("fraction", fraction))

	if c.modelNames == nil {
		return units.Vector{}, ErrModelNamesNotSet
	}

	n := c.NModels()
	radius := units.Vector{Values: make([]float64, n), Unit: units.AU}

	if c.apertures == nil {
		return radius, nil
	}
	if c.flux == nil {
		return units.Vector{}, ErrFluxNotSet
	}

	ap, err := c.apertures.To(units.AU)
	if err != nil {
		return units.Vector{}, err
	}
	na := ap.Len()

	for im := 0; im < n; im++ {
		required := fraction * c.flux.At(im, na-1)

		// Linear interpolation between the bracketing apertures.  When
		// the flux is not monotonic several pairs may bracket the
		// required value; the outermost pair wins.
		r := 0.0
		for ia := 0; ia < na-1; ia++ {
			f0 := c.flux.At(im, ia)
			f1 := c.flux.At(im, ia+1)
			if required >= f0 && required < f1 {
				r = (required-f0)/(f1-f0)*(ap.Values[ia+1]-ap.Values[ia]) + ap.Values[ia]
			}
		}

		// The boundary cases take precedence over interpolation.
		if required < c.flux.At(im, 0) {
			r = ap.Values[0]
		}
		if required >= c.flux.At(im, na-1) {
			r = ap.Values[na-1]
		}

		radius.Values[im] = r
	}

	return radius, nil
}

// FindRadiusSigma finds, for each model, the outermost aperture at which
// the annulus surface brightness exceeds the given fraction of the
// model's peak surface brightness.  The surface brightness of an annulus
// is the flux added by the annulus divided by the difference of the
// squared aperture radii.
//
// The result is one length per model, in astronomical units.  An
// aperture axis is required.
func (c *ConvolvedFluxes) FindRadiusSigma(fraction float64) (units.Vector, error) {
	log.Info("calculating peak surface brightness radii",
		zap.Float64("fraction", fraction))

	if c.apertures == nil {
		return units.Vector{}, ErrNoApertures
	}
	if c.flux == nil {
		return units.Vector{}, ErrFluxNotSet
	}

	ap, err := c.apertures.To(units.AU)
	if err != nil {
		return units.Vector{}, err
	}
	n := c.NModels()
	na := ap.Len()

	sigma := mat.NewDense(n, na, nil)
	for im := 0; im < n; im++ {
		sigma.Set(im, 0, c.flux.At(im, 0)/(ap.Values[0]*ap.Values[0]))
		for ia := 1; ia < na; ia++ {
			ds := c.flux.At(im, ia) - c.flux.At(im, ia-1)
			da := ap.Values[ia]*ap.Values[ia] - ap.Values[ia-1]*ap.Values[ia-1]
			sigma.Set(im, ia, ds/da)
		}
	}

	radius := units.Vector{Values: make([]float64, n), Unit: units.AU}
	row := make([]float64, na)
	for im := 0; im < n; im++ {
		mat.Row(row, im, sigma)
		threshold := fraction * floats.Max(row)

		// Walk the annuli from the outside in; the outermost annulus
		// above the threshold determines the radius.
		r := 0.0
		for ia := na - 2; ia >= 0; ia-- {
			if sigma.At(im, ia) > threshold && r == 0 {
				r = (sigma.At(im, ia)-threshold)/
					(sigma.At(im, ia)-sigma.At(im, ia+1))*
					(ap.Values[ia+1]-ap.Values[ia]) + ap.Values[ia]
			}
		}

		// Models which are still above the threshold at the outermost
		// annulus are assigned the last aperture.
		if sigma.At(im, na-1) > threshold {
			r = ap.Values[na-1]
		}

		radius.Values[im] = r
	}

	return radius, nil
}
