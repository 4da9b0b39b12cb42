// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dtm implements a georeferenced digital terrain model: a regular
// elevation grid with bilinear interpolation, per-cell altitude envelopes and
// line-of-sight intersection against the terrain surface.
//
// Two frames are used. The ground frame is (x, y, z) with x longitude-like
// and y latitude-like. The grid (index) frame is (row, col, z) with
// row ↔ y and col ↔ x:
//  row = (y - y0) / py
//  col = (x - x0) / px
package dtm

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DTM holds a digital terrain model. All fields are read-only after New
type DTM struct {

	// elevation grid
	Z      [][]float64 // [Nl][Nc] elevations
	Nl, Nc int         // number of rows and columns

	// georeferencing
	X0, Y0 float64 // ground coordinates of grid index (0,0)
	Px, Py float64 // pixel sizes along x (columns) and y (rows)
	Datum  string  // "geoid" or "ellipsoid"
	Epsg   int     // geographic CRS code

	// derived: altitude extrema
	Zmin, Zmax float64

	// derived: per-cell altitude envelopes [Nl-1][Nc-1]
	ZminCell [][]float64
	ZmaxCell [][]float64

	// derived: bounding cube planes a·row + b·col + c·z = d for the six faces
	// row=0, row=Nl-1, col=0, col=Nc-1, z=Zmin, z=Zmax
	PlaneA, PlaneB, PlaneC, PlaneD []float64

	// tolerance for degenerate cells during intersection
	TolZ float64
}

// New builds a DTM from an elevation grid and its georeferencing.
// Empty datum defaults to "geoid" and zero epsg defaults to 4326
func New(z [][]float64, x0, y0, px, py float64, datum string, epsg int) (o *DTM, err error) {

	// check input
	nl := len(z)
	if nl < 2 {
		return nil, chk.Err("dtm needs at least 2 rows. nl=%d is invalid", nl)
	}
	nc := len(z[0])
	if nc < 2 {
		return nil, chk.Err("dtm needs at least 2 columns. nc=%d is invalid", nc)
	}
	for i := 1; i < nl; i++ {
		if len(z[i]) != nc {
			return nil, chk.Err("dtm grid is not rectangular. row %d has %d columns instead of %d", i, len(z[i]), nc)
		}
	}
	if px == 0 || py == 0 {
		return nil, chk.Err("dtm pixel sizes must be nonzero. px=%g py=%g", px, py)
	}
	if datum == "" {
		datum = "geoid"
	}
	if datum != "geoid" && datum != "ellipsoid" {
		return nil, chk.Err("unknown datum %q. must be \"geoid\" or \"ellipsoid\"", datum)
	}
	if epsg == 0 {
		epsg = 4326
	}

	// allocate
	o = &DTM{
		Z: z, Nl: nl, Nc: nc,
		X0: x0, Y0: y0, Px: px, Py: py,
		Datum: datum, Epsg: epsg,
		TolZ: 1e-4,
	}

	// altitude extrema
	o.Zmin, o.Zmax = z[0][0], z[0][0]
	for i := 0; i < nl; i++ {
		for j := 0; j < nc; j++ {
			if z[i][j] < o.Zmin {
				o.Zmin = z[i][j]
			}
			if z[i][j] > o.Zmax {
				o.Zmax = z[i][j]
			}
		}
	}

	// per-cell envelopes. floor/ceil keeps the envelopes of adjacent cells
	// overlapping in altitude; flat cells must not collapse to ZminCell == ZmaxCell
	// unless the elevations are themselves integers
	o.ZminCell = la.MatAlloc(nl-1, nc-1)
	o.ZmaxCell = la.MatAlloc(nl-1, nc-1)
	for i := 0; i < nl-1; i++ {
		for j := 0; j < nc-1; j++ {
			zmin := math.Min(math.Min(z[i][j], z[i][j+1]), math.Min(z[i+1][j], z[i+1][j+1]))
			zmax := math.Max(math.Max(z[i][j], z[i][j+1]), math.Max(z[i+1][j], z[i+1][j+1]))
			o.ZminCell[i][j] = math.Floor(zmin)
			o.ZmaxCell[i][j] = math.Ceil(zmax)
		}
	}

	// bounding cube planes
	o.PlaneA = []float64{1, 1, 0, 0, 0, 0}
	o.PlaneB = []float64{0, 0, 1, 1, 0, 0}
	o.PlaneC = []float64{0, 0, 0, 0, 1, 1}
	o.PlaneD = []float64{0, float64(nl - 1), 0, float64(nc - 1), o.Zmin, o.Zmax}
	return
}

// AltMinMax returns the altitude extrema of the grid
func (o *DTM) AltMinMax() (zmin, zmax float64) {
	return o.Zmin, o.Zmax
}

// TerToIndex converts a ground frame point (x, y, z) to the grid frame (row, col, z)
func (o *DTM) TerToIndex(p [3]float64) [3]float64 {
	return [3]float64{(p[1] - o.Y0) / o.Py, (p[0] - o.X0) / o.Px, p[2]}
}

// IndexToTer converts a grid frame point (row, col, z) to the ground frame (x, y, z)
func (o *DTM) IndexToTer(p [3]float64) [3]float64 {
	return [3]float64{o.X0 + o.Px*p[1], o.Y0 + o.Py*p[0], p[2]}
}

// Interpolate returns the bilinearly interpolated altitude at grid coordinates
// (dRow, dCol). Points outside the grid are extrapolated with the last full
// cell instead of faulting
func (o *DTM) Interpolate(dRow, dCol float64) float64 {
	i1 := clampCell(dRow, o.Nl)
	j1 := clampCell(dCol, o.Nc)
	i2, j2 := i1+1, j1+1
	u := dCol - float64(j1)
	v := dRow - float64(i1)
	return (1-u)*(1-v)*o.Z[i1][j1] + u*(1-v)*o.Z[i1][j2] +
		(1-u)*v*o.Z[i2][j1] + u*v*o.Z[i2][j2]
}

// clampCell returns the first corner index of the cell holding coordinate w,
// clamped to [0, n-2]
func clampCell(w float64, n int) int {
	if w < 0 {
		return 0
	}
	if w >= float64(n-1) {
		return n - 2
	}
	return int(math.Floor(w))
}
