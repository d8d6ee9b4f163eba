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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	"seehuhn.de/go/sed/units"
)

// Read reads convolved fluxes from the FITS file with the given name.
//
// The filter wavelength and the aperture table are optional; when they
// are absent the corresponding fields are left unset.  The flux table
// with its MODEL_NAME, TOTAL_FLUX and TOTAL_FLUX_ERR columns is
// mandatory; a missing or malformed table results in a [FormatError].
// The derived radius columns are read back when present and otherwise
// silently omitted.
func Read(filename string) (*ConvolvedFluxes, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return readFrom(fd)
}

func readFrom(r io.Reader) (*ConvolvedFluxes, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	defer f.Close()

	hdus := f.HDUs()
	if len(hdus) == 0 {
		return nil, &FormatError{Err: errors.New("file contains no HDUs")}
	}

	c := New()

	if card := hdus[0].Header().Get(keyFiltWav); card != nil {
		wav, ok := floatValue(card.Value)
		if !ok {
			return nil, &FormatError{
				Err: fmt.Errorf("%s: unexpected value %v", keyFiltWav, card.Value),
			}
		}
		err := c.SetWavelength(units.Scalar{Value: wav, Unit: units.Micron})
		if err != nil {
			return nil, &FormatError{Err: err}
		}
	}

	// The aperture table is optional; a file without it holds total
	// fluxes only.
	if tbl := findTable(f, apertureTableName); tbl != nil {
		ap, err := readApertures(tbl)
		if err != nil {
			return nil, err
		}
		err = c.SetApertures(ap)
		if err != nil {
			return nil, &FormatError{Err: err}
		}
	}

	tbl := findTable(f, fluxTableName)
	if tbl == nil {
		return nil, &FormatError{
			Err: fmt.Errorf("missing %q table", fluxTableName),
		}
	}
	err = c.readFluxTable(tbl)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func findTable(f *fitsio.File, name string) *fitsio.Table {
	for _, hdu := range f.HDUs() {
		if tbl, ok := hdu.(*fitsio.Table); ok && tbl.Name() == name {
			return tbl
		}
	}
	return nil
}

func readApertures(tbl *fitsio.Table) (units.Vector, error) {
	cols := tbl.Cols()
	idx := colIndex(cols, "APERTURE")
	if idx < 0 {
		return units.Vector{}, &FormatError{Err: errors.New("missing APERTURE column")}
	}
	u, err := units.Parse(cols[idx].Unit)
	if err != nil {
		return units.Vector{}, &FormatError{Err: err}
	}

	dest, err := destinations(cols)
	if err != nil {
		return units.Vector{}, err
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return units.Vector{}, &FormatError{Err: err}
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		err := rows.Scan(dest...)
		if err != nil {
			return units.Vector{}, &FormatError{Err: err}
		}
		x, err := scalarAt(dest, cols, idx)
		if err != nil {
			return units.Vector{}, err
		}
		values = append(values, x)
	}
	if err := rows.Err(); err != nil {
		return units.Vector{}, &FormatError{Err: err}
	}

	return units.Vector{Values: values, Unit: u}, nil
}

func (c *ConvolvedFluxes) readFluxTable(tbl *fitsio.Table) error {
	cols := tbl.Cols()
	iName := colIndex(cols, "MODEL_NAME")
	iFlux := colIndex(cols, "TOTAL_FLUX")
	iErr := colIndex(cols, "TOTAL_FLUX_ERR")
	if iName < 0 || iFlux < 0 || iErr < 0 {
		return &FormatError{
			Err: fmt.Errorf("missing mandatory column in %q table", fluxTableName),
		}
	}
	fluxUnit, err := units.Parse(cols[iFlux].Unit)
	if err != nil {
		return &FormatError{Err: err}
	}
	errUnit, err := units.Parse(cols[iErr].Unit)
	if err != nil {
		return &FormatError{Err: err}
	}

	iSigma50 := colIndex(cols, "RADIUS_SIGMA_50")
	iCumul99 := colIndex(cols, "RADIUS_CUMUL_99")

	dest, err := destinations(cols)
	if err != nil {
		return err
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return &FormatError{Err: err}
	}
	defer rows.Close()

	nap := c.NAp()
	var names []string
	var fluxData, errData []float64
	var sigma50, cumul99 []float64
	for rows.Next() {
		err := rows.Scan(dest...)
		if err != nil {
			return &FormatError{Err: err}
		}

		name, err := stringAt(dest, iName)
		if err != nil {
			return err
		}
		// FITS pads string cells with trailing blanks.
		names = append(names, strings.TrimRight(name, " \x00"))

		// A single-aperture matrix may be stored as a flat column;
		// vectorAt re-introduces the aperture axis in that case.
		flux, err := vectorAt(dest, cols, iFlux)
		if err != nil {
			return err
		}
		if len(flux) != nap {
			return &FormatError{
				Err: fmt.Errorf("TOTAL_FLUX: row has %d values, expected %d", len(flux), nap),
			}
		}
		fluxData = append(fluxData, flux...)

		fluxErr, err := vectorAt(dest, cols, iErr)
		if err != nil {
			return err
		}
		if len(fluxErr) != nap {
			return &FormatError{
				Err: fmt.Errorf("TOTAL_FLUX_ERR: row has %d values, expected %d", len(fluxErr), nap),
			}
		}
		errData = append(errData, fluxErr...)

		if iSigma50 >= 0 && iCumul99 >= 0 {
			s, err1 := scalarAt(dest, cols, iSigma50)
			q, err2 := scalarAt(dest, cols, iCumul99)
			if err1 == nil && err2 == nil {
				sigma50 = append(sigma50, s)
				cumul99 = append(cumul99, q)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return &FormatError{Err: err}
	}
	if len(names) == 0 {
		return &FormatError{Err: fmt.Errorf("%q table is empty", fluxTableName)}
	}

	err = c.SetModelNames(names)
	if err != nil {
		return &FormatError{Err: err}
	}
	err = c.SetFlux(units.NewMatrix(len(names), nap, fluxData, fluxUnit))
	if err != nil {
		return &FormatError{Err: err}
	}
	err = c.SetFluxErr(units.NewMatrix(len(names), nap, errData, errUnit))
	if err != nil {
		return &FormatError{Err: err}
	}

	// The derived radii are optional and are not recomputed here; they
	// are kept only when both columns are complete and their units are
	// understood.
	if len(sigma50) == len(names) && len(cumul99) == len(names) {
		uS, errS := units.Parse(cols[iSigma50].Unit)
		uC, errC := units.Parse(cols[iCumul99].Unit)
		if errS == nil && errC == nil {
			vS := units.Vector{Values: sigma50, Unit: uS}
			vC := units.Vector{Values: cumul99, Unit: uC}
			c.radiusSigma50 = &vS
			c.radiusCumul99 = &vC
		}
	}

	return nil
}

func colIndex(cols []fitsio.Column, name string) int {
	for i, col := range cols {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// destinations allocates one scan target per column, based on the
// binary table format codes.
func destinations(cols []fitsio.Column) ([]interface{}, error) {
	dest := make([]interface{}, len(cols))
	for i, col := range cols {
		kind, repeat, varlen, err := parseFormat(col.Format)
		if err != nil {
			return nil, &FormatError{Err: fmt.Errorf("column %s: %w", col.Name, err)}
		}
		switch kind {
		case 'A':
			dest[i] = new(string)
		case 'D':
			if varlen || repeat > 1 {
				dest[i] = new([]float64)
			} else {
				dest[i] = new(float64)
			}
		case 'E':
			if varlen || repeat > 1 {
				dest[i] = new([]float32)
			} else {
				dest[i] = new(float32)
			}
		default:
			return nil, &FormatError{
				Err: fmt.Errorf("column %s: unsupported format %q", col.Name, col.Format),
			}
		}
	}
	return dest, nil
}

// parseFormat splits a binary table format code such as "12A", "D" or
// "PD(3)" into the element type letter, the repeat count, and whether
// the column holds variable length arrays ('P' or 'Q' descriptors).
func parseFormat(format string) (byte, int, bool, error) {
	s := strings.TrimSpace(format)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	repeat := 1
	if i > 0 {
		var err error
		repeat, err = strconv.Atoi(s[:i])
		if err != nil {
			return 0, 0, false, err
		}
	}
	if i >= len(s) {
		return 0, 0, false, fmt.Errorf("invalid column format %q", format)
	}
	kind := s[i]
	varlen := false
	if kind == 'P' || kind == 'Q' {
		varlen = true
		i++
		if i >= len(s) {
			return 0, 0, false, fmt.Errorf("invalid column format %q", format)
		}
		kind = s[i]
	}
	return kind, repeat, varlen, nil
}

func stringAt(dest []interface{}, i int) (string, error) {
	p, ok := dest[i].(*string)
	if !ok {
		return "", &FormatError{Err: fmt.Errorf("column %d: expected a string column", i)}
	}
	return *p, nil
}

func scalarAt(dest []interface{}, cols []fitsio.Column, i int) (float64, error) {
	switch p := dest[i].(type) {
	case *float64:
		return *p, nil
	case *float32:
		return float64(*p), nil
	case *[]float64:
		if len(*p) == 1 {
			return (*p)[0], nil
		}
	case *[]float32:
		if len(*p) == 1 {
			return float64((*p)[0]), nil
		}
	}
	return 0, &FormatError{
		Err: fmt.Errorf("column %s: expected a single number per row", cols[i].Name),
	}
}

func vectorAt(dest []interface{}, cols []fitsio.Column, i int) ([]float64, error) {
	switch p := dest[i].(type) {
	case *[]float64:
		return *p, nil
	case *[]float32:
		res := make([]float64, len(*p))
		for j, x := range *p {
			res[j] = float64(x)
		}
		return res, nil
	case *float64:
		return []float64{*p}, nil
	case *float32:
		return []float64{float64(*p)}, nil
	}
	return nil, &FormatError{
		Err: fmt.Errorf("column %s: expected a numeric column", cols[i].Name),
	}
}

func floatValue(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
