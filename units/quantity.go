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

package units

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scalar is a single number with a unit.
type Scalar struct {
	Value float64
	Unit  Unit
}

func (s Scalar) String() string {
	return fmt.Sprintf("%g %s", s.Value, s.Unit)
}

// To converts s to the unit u.
func (s Scalar) To(u Unit) (Scalar, error) {
	f, err := s.Unit.Factor(u)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: s.Value * f, Unit: u}, nil
}

// Equal reports whether s and t represent the same physical quantity.
func (s Scalar) Equal(t Scalar) bool {
	conv, err := t.To(s.Unit)
	if err != nil {
		return false
	}
	return s.Value == conv.Value
}

// Vector is a one-dimensional array of numbers sharing a unit.
type Vector struct {
	Values []float64
	Unit   Unit
}

// NewVector returns a vector holding a copy of values.
func NewVector(values []float64, u Unit) Vector {
	return Vector{Values: slices.Clone(values), Unit: u}
}

func (v Vector) Len() int {
	return len(v.Values)
}

// Clone returns a vector which does not share storage with v.
func (v Vector) Clone() Vector {
	return Vector{Values: slices.Clone(v.Values), Unit: v.Unit}
}

// To converts v to the unit u.  The result does not share storage with v.
func (v Vector) To(u Unit) (Vector, error) {
	f, err := v.Unit.Factor(u)
	if err != nil {
		return Vector{}, err
	}
	res := Vector{Values: make([]float64, len(v.Values)), Unit: u}
	for i, x := range v.Values {
		res.Values[i] = x * f
	}
	return res, nil
}

// Min returns the smallest element of v.  It panics when v is empty.
func (v Vector) Min() float64 {
	return floats.Min(v.Values)
}

// Max returns the largest element of v.  It panics when v is empty.
func (v Vector) Max() float64 {
	return floats.Max(v.Values)
}

// Equal reports whether v and w represent the same physical quantities,
// element by element.
func (v Vector) Equal(w Vector) bool {
	if len(v.Values) != len(w.Values) {
		return false
	}
	conv, err := w.To(v.Unit)
	if err != nil {
		return false
	}
	return slices.Equal(v.Values, conv.Values)
}

// Matrix is a dense two-dimensional array of numbers sharing a unit.
type Matrix struct {
	Data *mat.Dense
	Unit Unit
}

// NewMatrix returns an r×c matrix filled with the given data in row-major
// order.  When data is nil, the matrix is filled with zeros.
func NewMatrix(r, c int, data []float64, u Unit) Matrix {
	return Matrix{Data: mat.NewDense(r, c, data), Unit: u}
}

// Zeros returns an r×c matrix of zeros in the unit u.
func Zeros(r, c int, u Unit) Matrix {
	return Matrix{Data: mat.NewDense(r, c, nil), Unit: u}
}

// Dims returns the number of rows and columns.
func (m Matrix) Dims() (int, int) {
	return m.Data.Dims()
}

// At returns the element in row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.Data.At(i, j)
}

// Row copies row i of the matrix into dst and returns it.  When dst is
// nil a new slice is allocated.
func (m Matrix) Row(dst []float64, i int) []float64 {
	return mat.Row(dst, i, m.Data)
}

// Clone returns a matrix which does not share storage with m.
func (m Matrix) Clone() Matrix {
	return Matrix{Data: mat.DenseCopyOf(m.Data), Unit: m.Unit}
}

// To converts m to the unit u.  The result does not share storage with m.
func (m Matrix) To(u Unit) (Matrix, error) {
	f, err := m.Unit.Factor(u)
	if err != nil {
		return Matrix{}, err
	}
	res := mat.DenseCopyOf(m.Data)
	res.Scale(f, res)
	return Matrix{Data: res, Unit: u}, nil
}

// Equal reports whether m and n represent the same physical quantities,
// element by element.
func (m Matrix) Equal(n Matrix) bool {
	mr, mc := m.Dims()
	nr, nc := n.Dims()
	if mr != nr || mc != nc {
		return false
	}
	conv, err := n.To(m.Unit)
	if err != nil {
		return false
	}
	return mat.Equal(m.Data, conv.Data)
}
