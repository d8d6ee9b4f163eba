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
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/astrogo/fitsio"

	"seehuhn.de/go/sed/units"
)

// Names of the file segments and header keys.  The wavelength is always
// recorded in microns.
const (
	fluxTableName     = "CONVOLVED FLUXES"
	apertureTableName = "APERTURES"

	keyFiltWav = "FILTWAV"
	keyNModels = "NMODELS"
	keyNAp     = "NAP"
)

// Write writes the convolved fluxes to a FITS file.
//
// The file consists of a primary header carrying the filter wavelength
// and the model and aperture counts, a binary table with the model
// names, fluxes and errors, and, when apertures are defined, a second
// binary table listing the apertures.  When apertures are defined the
// flux table additionally contains the 50% peak surface brightness and
// 99% cumulative flux radii, computed at write time.
//
// Unless overwrite is set, Write refuses to replace an existing file.
// When it does replace a file, the replacement is atomic.
func (c *ConvolvedFluxes) Write(filename string, overwrite bool) error {
	if c.modelNames == nil {
		return ErrModelNamesNotSet
	}
	if c.flux == nil || c.fluxErr == nil {
		return ErrFluxNotSet
	}

	if !overwrite {
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("%s: %w", filename, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".convolved-*.fits")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	err = c.writeTo(tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, filename)
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (c *ConvolvedFluxes) writeTo(w io.Writer) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	err = c.writeSegments(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (c *ConvolvedFluxes) writeSegments(f *fitsio.File) error {
	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}
	var cards []fitsio.Card
	if c.wavelength != nil {
		wav, err := c.wavelength.To(units.Micron)
		if err != nil {
			return err
		}
		cards = append(cards, fitsio.Card{
			Name:    keyFiltWav,
			Value:   wav.Value,
			Comment: "characteristic wavelength of the filter [um]",
		})
	}
	cards = append(cards,
		fitsio.Card{Name: keyNModels, Value: c.NModels(), Comment: "number of models"},
		fitsio.Card{Name: keyNAp, Value: c.NAp(), Comment: "number of apertures"},
	)
	err = phdu.Header().Append(cards...)
	if err != nil {
		return err
	}
	err = f.Write(phdu)
	if err != nil {
		return err
	}

	err = c.writeFluxTable(f)
	if err != nil {
		return err
	}

	if c.apertures != nil {
		err = c.writeApertureTable(f)
		if err != nil {
			return err
		}
	}
	return nil
}

type fluxRow struct {
	Name          string    `fits:"MODEL_NAME"`
	Flux          []float64 `fits:"TOTAL_FLUX"`
	FluxErr       []float64 `fits:"TOTAL_FLUX_ERR"`
	RadiusSigma50 float64   `fits:"RADIUS_SIGMA_50"`
	RadiusCumul99 float64   `fits:"RADIUS_CUMUL_99"`
}

type fluxRowOneAp struct {
	Name          string  `fits:"MODEL_NAME"`
	Flux          float64 `fits:"TOTAL_FLUX"`
	FluxErr       float64 `fits:"TOTAL_FLUX_ERR"`
	RadiusSigma50 float64 `fits:"RADIUS_SIGMA_50"`
	RadiusCumul99 float64 `fits:"RADIUS_CUMUL_99"`
}

type fluxRowTotal struct {
	Name    string  `fits:"MODEL_NAME"`
	Flux    float64 `fits:"TOTAL_FLUX"`
	FluxErr float64 `fits:"TOTAL_FLUX_ERR"`
}

type apertureRow struct {
	Aperture float64 `fits:"APERTURE"`
}

func (c *ConvolvedFluxes) writeFluxTable(f *fitsio.File) error {
	nameLen := 1
	for _, name := range c.modelNames {
		if len(name) > nameLen {
			nameLen = len(name)
		}
	}

	nap := c.NAp()
	fluxFormat := "D"
	if nap > 1 {
		// variable length array cells; every row holds exactly nap values
		fluxFormat = fmt.Sprintf("PD(%d)", nap)
	}

	cols := []fitsio.Column{
		// string cells lose one byte to a marker, so the column is one
		// wider than the longest name
		{Name: "MODEL_NAME", Format: strconv.Itoa(nameLen+1) + "A"},
		{Name: "TOTAL_FLUX", Format: fluxFormat, Unit: c.flux.Unit.String()},
		{Name: "TOTAL_FLUX_ERR", Format: fluxFormat, Unit: c.fluxErr.Unit.String()},
	}

	var rSigma50, rCumul99 units.Vector
	if c.apertures != nil {
		var err error
		rSigma50, err = c.FindRadiusSigma(0.50)
		if err != nil {
			return err
		}
		rCumul99, err = c.FindRadiusCumul(0.99)
		if err != nil {
			return err
		}
		cols = append(cols,
			fitsio.Column{Name: "RADIUS_SIGMA_50", Format: "D", Unit: rSigma50.Unit.String()},
			fitsio.Column{Name: "RADIUS_CUMUL_99", Format: "D", Unit: rCumul99.Unit.String()},
		)
	}

	tbl, err := fitsio.NewTable(fluxTableName, cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()

	for im, name := range c.modelNames {
		var err error
		switch {
		case c.apertures != nil && nap > 1:
			err = tbl.Write(&fluxRow{
				Name:          name,
				Flux:          c.flux.Row(nil, im),
				FluxErr:       c.fluxErr.Row(nil, im),
				RadiusSigma50: rSigma50.Values[im],
				RadiusCumul99: rCumul99.Values[im],
			})
		case c.apertures != nil:
			err = tbl.Write(&fluxRowOneAp{
				Name:          name,
				Flux:          c.flux.At(im, 0),
				FluxErr:       c.fluxErr.At(im, 0),
				RadiusSigma50: rSigma50.Values[im],
				RadiusCumul99: rCumul99.Values[im],
			})
		default:
			err = tbl.Write(&fluxRowTotal{
				Name:    name,
				Flux:    c.flux.At(im, 0),
				FluxErr: c.fluxErr.At(im, 0),
			})
		}
		if err != nil {
			return err
		}
	}

	return f.Write(tbl)
}

func (c *ConvolvedFluxes) writeApertureTable(f *fitsio.File) error {
	cols := []fitsio.Column{
		{Name: "APERTURE", Format: "D", Unit: c.apertures.Unit.String()},
	}
	tbl, err := fitsio.NewTable(apertureTableName, cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()

	for _, ap := range c.apertures.Values {
		err := tbl.Write(&apertureRow{Aperture: ap})
		if err != nil {
			return err
		}
	}

	return f.Write(tbl)
}
