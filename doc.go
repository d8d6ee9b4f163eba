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

// Package sed stores model spectral energy distributions which have been
// convolved with an instrument filter response.
//
// The central type is [ConvolvedFluxes].  One value holds, for a single
// filter, the convolved fluxes of a set of models measured at a set of
// photometric apertures, together with the corresponding uncertainties.
// Values are either populated field by field using the validating
// setters, created pre-allocated using [NewZeroed], or loaded from a
// FITS file:
//
//	c, err := sed.Read("filter_V.fits")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r50, err := c.FindRadiusSigma(0.5)
//	...
//
// Fluxes can be resampled onto a different set of apertures using
// [ConvolvedFluxes.Interpolate], and two physically meaningful radii can
// be derived for every model: the aperture containing a given fraction
// of the total flux ([ConvolvedFluxes.FindRadiusCumul]), and the
// outermost aperture where the annulus surface brightness exceeds a
// given fraction of its peak ([ConvolvedFluxes.FindRadiusSigma]).
//
// All numeric values carry physical units, represented by the types in
// seehuhn.de/go/sed/units.
package sed
