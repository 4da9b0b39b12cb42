// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adebardo/shareloc/dtm"
	"github.com/adebardo/shareloc/inp"
	"github.com/adebardo/shareloc/loc"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nshareloc -- sensor geolocation with RPC models\n\n")

	// input data
	geomodel := flag.String("model", "", "geomodel JSON file")
	dtmfile := flag.String("dtm", "", "DTM JSON file (optional)")
	mode := flag.String("mode", "direct", "localization mode: direct, inverse or dtm")
	row := flag.Float64("row", 0, "sensor row (direct and dtm modes)")
	col := flag.Float64("col", 0, "sensor column (direct and dtm modes)")
	lon := flag.Float64("lon", 0, "ground longitude (inverse mode)")
	lat := flag.Float64("lat", 0, "ground latitude (inverse mode)")
	alt := flag.Float64("alt", 0, "altitude (direct and inverse modes)")
	topleft := flag.Bool("topleft", true, "use the top-left pixel convention")
	flag.Parse()
	if *geomodel == "" {
		chk.Panic("a geomodel file is required. use -model")
	}

	// geometric model
	bundle, err := inp.ReadGeoModel(filepath.Dir(*geomodel), filepath.Base(*geomodel))
	if err != nil {
		chk.Panic("cannot load geomodel:\n%v", err)
	}
	model, err := bundle.Model(*topleft)
	if err != nil {
		chk.Panic("cannot build RPC model:\n%v", err)
	}
	io.Pf("geomodel: %s (driver %q, epsg %d)\n", *geomodel, bundle.DriverType, bundle.Epsg)

	// terrain model
	var terrain *dtm.DTM
	if *dtmfile != "" {
		terrain, err = inp.ReadDTM(filepath.Dir(*dtmfile), filepath.Base(*dtmfile))
		if err != nil {
			chk.Panic("cannot load DTM:\n%v", err)
		}
		zmin, zmax := terrain.AltMinMax()
		io.Pf("dtm: %s (%d x %d, z in [%g, %g], datum %q)\n", *dtmfile, terrain.Nl, terrain.Nc, zmin, zmax, terrain.Datum)
	}

	// localization
	localizer := loc.New(model, terrain)
	switch *mode {
	case "direct":
		lo, la, err := localizer.Direct(*row, *col, *alt)
		if err != nil {
			chk.Panic("direct localization failed:\n%v", err)
		}
		io.Pf("direct loc: row=%g col=%g alt=%g => lon=%.12g lat=%.12g\n", *row, *col, *alt, lo, la)
	case "inverse":
		r, c, err := localizer.Inverse(*lon, *lat, *alt)
		if err != nil {
			chk.Panic("inverse localization failed:\n%v", err)
		}
		io.Pf("inverse loc: lon=%g lat=%g alt=%g => row=%.6f col=%.6f\n", *lon, *lat, *alt, r, c)
	case "dtm":
		point, err := localizer.DirectDTM(*row, *col)
		if err != nil {
			chk.Panic("localization on DTM failed:\n%v", err)
		}
		io.Pf("direct loc on DTM: row=%g col=%g => lon=%.12g lat=%.12g alt=%.4f\n", *row, *col, point[0], point[1], point[2])
	default:
		chk.Panic("unknown mode %q. use direct, inverse or dtm", *mode)
	}
}
