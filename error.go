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

import "errors"

var (
	// ErrModelNamesNotSet is returned when flux or error values are
	// assigned before the model names.
	ErrModelNamesNotSet = errors.New("model_names has not been set")

	// ErrFluxNotSet is returned by operations which need the flux
	// matrix before it has been assigned.
	ErrFluxNotSet = errors.New("flux has not been set")

	// ErrNoApertures is returned by operations which require an
	// aperture axis when none is defined.
	ErrNoApertures = errors.New("no apertures defined")

	// ErrApertureTooSmall is returned by Interpolate when a requested
	// aperture is below the smallest tabulated aperture.
	ErrApertureTooSmall = errors.New("aperture requested too small")
)

var errNotPositive = errors.New("should be strictly positive")

// TypeError indicates that a value of the wrong kind, or with the wrong
// physical dimension, was assigned to a field.
type TypeError struct {
	Field string
	Msg   string
}

func (err *TypeError) Error() string {
	return err.Field + ": " + err.Msg
}

// ValueError indicates a value of the correct kind and dimension which
// violates a domain constraint, for example a non-positive aperture or a
// flux matrix of the wrong shape.
type ValueError struct {
	Field string
	Err   error
}

func (err *ValueError) Error() string {
	return err.Field + ": " + err.Err.Error()
}

func (err *ValueError) Unwrap() error {
	return err.Err
}

// FormatError indicates that a file could not be parsed as a convolved
// fluxes table.
type FormatError struct {
	Err error
}

func (err *FormatError) Error() string {
	if err.Err != nil {
		return "not a valid convolved fluxes file: " + err.Err.Error()
	}
	return "not a valid convolved fluxes file"
}

func (err *FormatError) Unwrap() error {
	return err.Err
}
