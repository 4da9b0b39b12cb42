// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adebardo/shareloc/dtm"
)

// DTMFile holds a DTM image: the georeferencing header and the elevation
// grid. The origin (x0, y0) is the ground position of grid index (0, 0);
// nodata, when present, marks invalid cells to be filled before use
type DTMFile struct {
	X0     float64     `json:"x0"`
	Y0     float64     `json:"y0"`
	Px     float64     `json:"px"`
	Py     float64     `json:"py"`
	Nl     int         `json:"nl"`
	Nc     int         `json:"nc"`
	Datum  string      `json:"datum"`  // "geoid" or "ellipsoid"; empty means "geoid"
	Epsg   int         `json:"epsg"`   // 0 means 4326
	NoData *float64    `json:"nodata"` // null means no invalid cells
	Z      [][]float64 `json:"z"`
}

// ReadDTM reads a DTM from a JSON file, fills nodata cells and builds the
// terrain model
func ReadDTM(dir, fn string) (o *dtm.DTM, err error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read DTM file. %v", err)
	}
	f := new(DTMFile)
	err = json.Unmarshal(b, f)
	if err != nil {
		return nil, chk.Err("cannot unmarshal DTM file %q. %v", fn, err)
	}
	if len(f.Z) != f.Nl {
		return nil, chk.Err("DTM file %q declares %d rows but holds %d", fn, f.Nl, len(f.Z))
	}
	for i, zrow := range f.Z {
		if len(zrow) != f.Nc {
			return nil, chk.Err("DTM file %q declares %d columns but row %d holds %d", fn, f.Nc, i, len(zrow))
		}
	}
	if f.NoData != nil {
		nfilled := FillNoData(f.Z, *f.NoData)
		if nfilled > 0 {
			io.Pf("filled %d nodata cells in %q\n", nfilled, fn)
		}
	}
	return dtm.New(f.Z, f.X0, f.Y0, f.Px, f.Py, f.Datum, f.Epsg)
}

// FillNoData replaces cells equal to the nodata value (or NaN) with the
// nearest valid cell along the same row, or along the same column when the
// whole row is invalid. Returns the number of filled cells
func FillNoData(z [][]float64, nodata float64) (nfilled int) {
	invalid := func(v float64) bool {
		return v == nodata || math.IsNaN(v)
	}
	nl := len(z)
	for i := 0; i < nl; i++ {
		nc := len(z[i])
		for j := 0; j < nc; j++ {
			if !invalid(z[i][j]) {
				continue
			}
			nfilled++
			if v, ok := nearestValidInRow(z[i], j, invalid); ok {
				z[i][j] = v
				continue
			}
			for d := 1; d < nl; d++ {
				if i-d >= 0 && !invalid(z[i-d][j]) {
					z[i][j] = z[i-d][j]
					break
				}
				if i+d < nl && !invalid(z[i+d][j]) {
					z[i][j] = z[i+d][j]
					break
				}
			}
		}
	}
	return
}

// nearestValidInRow scans left and right from column j for a valid cell
func nearestValidInRow(zrow []float64, j int, invalid func(float64) bool) (v float64, ok bool) {
	nc := len(zrow)
	for d := 1; d < nc; d++ {
		if j-d >= 0 && !invalid(zrow[j-d]) {
			return zrow[j-d], true
		}
		if j+d < nc && !invalid(zrow[j+d]) {
			return zrow[j+d], true
		}
	}
	return 0, false
}
