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

// Sedinfo prints a summary of convolved model flux files.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"seehuhn.de/go/sed"
)

func main() {
	verbose := flag.Bool("v", false, "log progress information")
	showNames := flag.Bool("names", false, "list the model names")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Printf("Usage: %s [options] file.fits ...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		sed.SetLogger(logger)
	}

	for _, fname := range flag.Args() {
		err := show(fname, *showNames)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", fname, err)
			os.Exit(1)
		}
	}
}

func show(fname string, showNames bool) error {
	c, err := sed.Read(fname)
	if err != nil {
		return err
	}

	fmt.Println(fname + ":")
	if w, ok := c.Wavelength(); ok {
		fmt.Printf("  wavelength: %s\n", w)
	} else {
		fmt.Println("  wavelength: not recorded")
	}
	fmt.Printf("  models:     %d\n", c.NModels())
	if ap, ok := c.Apertures(); ok {
		fmt.Printf("  apertures:  %d, from %g to %g %s\n",
			ap.Len(), ap.Min(), ap.Max(), ap.Unit)
	} else {
		fmt.Println("  apertures:  none (total fluxes)")
	}
	if flux, ok := c.Flux(); ok {
		fmt.Printf("  flux unit:  %s\n", flux.Unit)
	}
	if _, ok := c.RadiusSigma50(); ok {
		fmt.Println("  radii:      RADIUS_SIGMA_50, RADIUS_CUMUL_99 present")
	}
	if showNames {
		for _, name := range c.ModelNames() {
			fmt.Println("    " + name)
		}
	}
	return nil
}
