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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sed/units"
)

func TestInterpolateIdentity(t *testing.T) {
	c := testFluxes(t)

	res, err := c.Interpolate(units.NewVector([]float64{1, 2, 3}, units.AU))
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equal(res) {
		t.Error("interpolating onto the source apertures changed the values")
	}
}

func TestInterpolateExample(t *testing.T) {
	c := testFluxes(t)

	res, err := c.Interpolate(units.NewVector([]float64{1.5, 2.5}, units.AU))
	if err != nil {
		t.Fatal(err)
	}

	flux, ok := res.Flux()
	if !ok {
		t.Fatal("no flux in result")
	}
	want := units.NewMatrix(2, 2, []float64{1.5, 2.5, 3, 5}, units.MilliJansky)
	if !flux.Equal(want) {
		t.Errorf("got flux %v", flux.Data.RawMatrix().Data)
	}

	if res.NModels() != 2 || res.NAp() != 2 {
		t.Errorf("got NModels=%d, NAp=%d", res.NModels(), res.NAp())
	}
}

func TestInterpolateClampAbove(t *testing.T) {
	c := testFluxes(t)

	res, err := c.Interpolate(units.NewVector([]float64{2, 5}, units.AU))
	if err != nil {
		t.Fatal(err)
	}

	ap, ok := res.Apertures()
	if !ok {
		t.Fatal("no apertures in result")
	}
	if d := cmp.Diff([]float64{2, 3}, ap.Values); d != "" {
		t.Error(d)
	}

	flux, _ := res.Flux()
	// the clamped aperture receives the flux at the largest tabulated
	// aperture
	if flux.At(0, 1) != 3 || flux.At(1, 1) != 6 {
		t.Errorf("got %g, %g", flux.At(0, 1), flux.At(1, 1))
	}
}

func TestInterpolateBelowMinimum(t *testing.T) {
	c := testFluxes(t)

	_, err := c.Interpolate(units.NewVector([]float64{0.5, 2}, units.AU))
	if !errors.Is(err, ErrApertureTooSmall) {
		t.Errorf("got %v, expected ErrApertureTooSmall", err)
	}
}

func TestInterpolateLeavesArgumentAlone(t *testing.T) {
	c := testFluxes(t)

	arg := units.NewVector([]float64{2, 5}, units.AU)
	_, err := c.Interpolate(arg)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{2, 5}, arg.Values); d != "" {
		t.Error("Interpolate modified its argument:\n" + d)
	}
}

func TestInterpolateBroadcast(t *testing.T) {
	// an instance without an aperture axis holds total fluxes only
	c := New()
	err := c.SetModelNames([]string{"m1", "m2"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetFlux(units.NewMatrix(2, 1, []float64{7, 9}, units.MilliJansky))
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetFluxErr(units.NewMatrix(2, 1, []float64{1, 2}, units.MilliJansky))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Interpolate(units.NewVector([]float64{1, 10, 100}, units.AU))
	if err != nil {
		t.Fatal(err)
	}

	flux, _ := res.Flux()
	want := units.NewMatrix(2, 3, []float64{7, 7, 7, 9, 9, 9}, units.MilliJansky)
	if !flux.Equal(want) {
		t.Error("total flux not broadcast to all apertures")
	}
	errs, _ := res.FluxErr()
	wantErr := units.NewMatrix(2, 3, []float64{1, 1, 1, 2, 2, 2}, units.MilliJansky)
	if !errs.Equal(wantErr) {
		t.Error("flux error not broadcast to all apertures")
	}
}

func TestInterpolateUnitConversion(t *testing.T) {
	c := testFluxes(t)

	// 2 au expressed in metres
	target := units.NewVector([]float64{2 * 1.495978707e11}, units.Metre)
	res, err := c.Interpolate(target)
	if err != nil {
		t.Fatal(err)
	}
	flux, _ := res.Flux()
	if math.Abs(flux.At(0, 0)-2) > 1e-12 || math.Abs(flux.At(1, 0)-4) > 1e-12 {
		t.Errorf("got %g, %g", flux.At(0, 0), flux.At(1, 0))
	}

	// the result keeps the unit the apertures were requested in
	ap, _ := res.Apertures()
	if ap.Unit != units.Metre {
		t.Errorf("result apertures are in %s", ap.Unit)
	}
}

func TestInterpolateCarriesRadii(t *testing.T) {
	c := testFluxes(t)
	r := units.NewVector([]float64{1.5, 1.5}, units.AU)
	c.radiusSigma50 = &r

	res, err := c.Interpolate(units.NewVector([]float64{1.5}, units.AU))
	if err != nil {
		t.Fatal(err)
	}

	got, ok := res.RadiusSigma50()
	if !ok {
		t.Fatal("radii not carried over")
	}
	if !got.Equal(r) {
		t.Error("radii changed during interpolation")
	}
	got.Values[0] = 99
	if c.radiusSigma50.Values[0] != 1.5 {
		t.Error("radii are shared between source and result")
	}

	if _, ok := res.RadiusCumul99(); ok {
		t.Error("absent radii appeared in the result")
	}
}

func TestInterpolateRequiresFlux(t *testing.T) {
	c := New()
	target := units.NewVector([]float64{1}, units.AU)

	_, err := c.Interpolate(target)
	if !errors.Is(err, ErrModelNamesNotSet) {
		t.Errorf("got %v, expected ErrModelNamesNotSet", err)
	}

	err = c.SetModelNames([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Interpolate(target)
	if !errors.Is(err, ErrFluxNotSet) {
		t.Errorf("got %v, expected ErrFluxNotSet", err)
	}
}
