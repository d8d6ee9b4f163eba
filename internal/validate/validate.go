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

// Package validate provides domain and shape checks for numeric arrays,
// with uniform error messages.  The errors do not name the checked
// field; callers add that context when wrapping them.
package validate

import "fmt"

// Positive checks that every element of xs is strictly positive.
func Positive(xs []float64) error {
	for i, x := range xs {
		if !(x > 0) {
			return fmt.Errorf("element %d is %v, should be strictly positive", i, x)
		}
	}
	return nil
}

// Increasing checks that the elements of xs are strictly increasing.
func Increasing(xs []float64) error {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return fmt.Errorf("elements %d and %d are not strictly increasing", i-1, i)
		}
	}
	return nil
}

// Shape checks that a matrix has the required dimensions.
func Shape(gotRows, gotCols, wantRows, wantCols int) error {
	if gotRows != wantRows || gotCols != wantCols {
		return fmt.Errorf("has shape (%d, %d), should be (%d, %d)",
			gotRows, gotCols, wantRows, wantCols)
	}
	return nil
}

// NonEmpty checks that an array with n elements is not empty.
func NonEmpty(n int) error {
	if n == 0 {
		return fmt.Errorf("must not be empty")
	}
	return nil
}
