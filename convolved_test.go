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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sed/units"
)

// testFluxes returns the instance used in the examples throughout the
// tests: two models at three apertures, with a linear flux ramp.
func testFluxes(t *testing.T) *ConvolvedFluxes {
	t.Helper()

	c := New()
	err := c.SetModelNames([]string{"m1", "m2"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetApertures(units.NewVector([]float64{1, 2, 3}, units.AU))
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetFlux(units.NewMatrix(2, 3, []float64{1, 2, 3, 2, 4, 6}, units.MilliJansky))
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetFluxErr(units.Zeros(2, 3, units.MilliJansky))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSetFluxBeforeNames(t *testing.T) {
	flux := units.NewMatrix(2, 1, []float64{1, 2}, units.MilliJansky)

	c := New()
	if err := c.SetFlux(flux); !errors.Is(err, ErrModelNamesNotSet) {
		t.Errorf("SetFlux: got %v, expected ErrModelNamesNotSet", err)
	}
	if err := c.SetFluxErr(flux); !errors.Is(err, ErrModelNamesNotSet) {
		t.Errorf("SetFluxErr: got %v, expected ErrModelNamesNotSet", err)
	}

	// after setting the model names the same values are accepted
	if err := c.SetModelNames([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFlux(flux); err != nil {
		t.Error(err)
	}
	if err := c.SetFluxErr(flux); err != nil {
		t.Error(err)
	}
}

func TestFluxShape(t *testing.T) {
	c := New()
	err := c.SetModelNames([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetApertures(units.NewVector([]float64{1, 2, 3}, units.AU))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		rows, cols int
	}{
		{2, 2},
		{3, 3},
		{1, 3},
		{3, 2},
	}
	for _, test := range cases {
		var vErr *ValueError
		err := c.SetFlux(units.Zeros(test.rows, test.cols, units.MilliJansky))
		if !errors.As(err, &vErr) {
			t.Errorf("shape (%d, %d): got %v, expected a *ValueError",
				test.rows, test.cols, err)
		}
	}

	err = c.SetFlux(units.Zeros(2, 3, units.MilliJansky))
	if err != nil {
		t.Error(err)
	}
}

func TestFluxUnit(t *testing.T) {
	c := New()
	err := c.SetModelNames([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}

	var tErr *TypeError
	err = c.SetFlux(units.Zeros(1, 1, units.AU))
	if !errors.As(err, &tErr) {
		t.Errorf("got %v, expected a *TypeError", err)
	}

	for _, u := range []units.Unit{units.ErgPerS, units.ErgPerCm2S, units.MilliJansky} {
		err := c.SetFlux(units.Zeros(1, 1, u))
		if err != nil {
			t.Errorf("%s: %v", u, err)
		}
	}
}

func TestWavelengthValidation(t *testing.T) {
	c := New()

	var tErr *TypeError
	err := c.SetWavelength(units.Scalar{Value: 1, Unit: units.Jansky})
	if !errors.As(err, &tErr) {
		t.Errorf("got %v, expected a *TypeError", err)
	}

	var vErr *ValueError
	for _, val := range []float64{0, -1} {
		err := c.SetWavelength(units.Scalar{Value: val, Unit: units.Micron})
		if !errors.As(err, &vErr) {
			t.Errorf("%g: got %v, expected a *ValueError", val, err)
		}
	}

	err = c.SetWavelength(units.Scalar{Value: 5.5, Unit: units.Micron})
	if err != nil {
		t.Error(err)
	}
	w, ok := c.Wavelength()
	if !ok || w.Value != 5.5 || w.Unit != units.Micron {
		t.Errorf("got %v, %t", w, ok)
	}
}

func TestAperturesValidation(t *testing.T) {
	c := New()

	var tErr *TypeError
	err := c.SetApertures(units.NewVector([]float64{1, 2}, units.Jansky))
	if !errors.As(err, &tErr) {
		t.Errorf("got %v, expected a *TypeError", err)
	}

	var vErr *ValueError
	err = c.SetApertures(units.NewVector([]float64{1, 0}, units.AU))
	if !errors.As(err, &vErr) {
		t.Errorf("got %v, expected a *ValueError", err)
	}

	err = c.SetApertures(units.NewVector([]float64{2, 1}, units.AU))
	if !errors.As(err, &vErr) {
		t.Errorf("got %v, expected a *ValueError", err)
	}

	err = c.SetApertures(units.NewVector([]float64{1, 2}, units.AU))
	if err != nil {
		t.Error(err)
	}
}

func TestCounts(t *testing.T) {
	c := New()
	if c.NModels() != 0 {
		t.Errorf("NModels = %d before names are set", c.NModels())
	}
	if c.NAp() != 1 {
		t.Errorf("NAp = %d without apertures, expected 1", c.NAp())
	}

	err := c.SetModelNames([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.SetApertures(units.NewVector([]float64{1, 2}, units.AU))
	if err != nil {
		t.Fatal(err)
	}
	if c.NModels() != 3 || c.NAp() != 2 {
		t.Errorf("got NModels=%d, NAp=%d", c.NModels(), c.NAp())
	}
}

func TestNewZeroed(t *testing.T) {
	ap := units.NewVector([]float64{1, 2, 3}, units.AU)

	c, err := NewZeroed([]string{"a", "b"}, ap, units.MilliJansky)
	if err != nil {
		t.Fatal(err)
	}
	flux, ok := c.Flux()
	if !ok {
		t.Fatal("flux not initialized")
	}
	r, cols := flux.Dims()
	if r != 2 || cols != 3 {
		t.Errorf("flux has shape (%d, %d)", r, cols)
	}
	if !flux.Equal(units.Zeros(2, 3, units.MilliJansky)) {
		t.Error("flux not zero-filled")
	}
	if _, ok := c.FluxErr(); !ok {
		t.Error("error matrix not initialized")
	}

	var vErr *ValueError
	_, err = NewZeroed(nil, ap, units.MilliJansky)
	if !errors.As(err, &vErr) {
		t.Errorf("missing model names: got %v, expected a *ValueError", err)
	}
	_, err = NewZeroed([]string{"a"}, units.Vector{Unit: units.AU}, units.MilliJansky)
	if !errors.As(err, &vErr) {
		t.Errorf("missing apertures: got %v, expected a *ValueError", err)
	}

	var tErr *TypeError
	_, err = NewZeroed([]string{"a"}, ap, units.AU)
	if !errors.As(err, &tErr) {
		t.Errorf("length unit: got %v, expected a *TypeError", err)
	}
}

func TestEqual(t *testing.T) {
	a := testFluxes(t)
	b := testFluxes(t)
	if !a.Equal(b) {
		t.Error("equal instances reported as unequal")
	}

	// physically different values, in a compatible unit
	err := b.SetFlux(units.NewMatrix(2, 3, []float64{1000, 2000, 3000, 2000, 4000, 6000}, units.Jansky))
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("different fluxes reported as equal")
	}

	c := testFluxes(t)
	err = c.SetWavelength(units.Scalar{Value: 2, Unit: units.Micron})
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("instances differing in wavelength reported as equal")
	}
}

func TestModelNamesCopied(t *testing.T) {
	names := []string{"a", "b"}
	c := New()
	err := c.SetModelNames(names)
	if err != nil {
		t.Fatal(err)
	}
	names[0] = "changed"
	if d := cmp.Diff([]string{"a", "b"}, c.ModelNames()); d != "" {
		t.Error(d)
	}
}
