// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// rampGrid returns the plane z = 100 + 2·row + 3·col sampled on a (nl, nc)
// grid. Bilinear interpolation reproduces a plane exactly, so expected
// altitudes have a closed form
func rampGrid(nl, nc int) [][]float64 {
	z := la.MatAlloc(nl, nc)
	for i := 0; i < nl; i++ {
		for j := 0; j < nc; j++ {
			z[i][j] = 100 + 2*float64(i) + 3*float64(j)
		}
	}
	return z
}

// rampDTM georeferences the ramp grid: x0=10, y0=20, px=0.5, py=0.25
func rampDTM(tst *testing.T, nl, nc int) *DTM {
	o, err := New(rampGrid(nl, nc), 10, 20, 0.5, 0.25, "", 0)
	if err != nil {
		tst.Fatalf("cannot build test DTM: %v", err)
	}
	return o
}

func Test_dtm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dtm01. construction")

	o := rampDTM(tst, 5, 7)

	// defaults and extrema
	chk.StrAssert(o.Datum, "geoid")
	chk.IntAssert(o.Epsg, 4326)
	zmin, zmax := o.AltMinMax()
	chk.Scalar(tst, "zmin", 1e-17, zmin, 100)
	chk.Scalar(tst, "zmax", 1e-17, zmax, 126)

	// bounding cube planes: a·row + b·col + c·z = d
	chk.Vector(tst, "plane a", 1e-17, o.PlaneA, []float64{1, 1, 0, 0, 0, 0})
	chk.Vector(tst, "plane b", 1e-17, o.PlaneB, []float64{0, 0, 1, 1, 0, 0})
	chk.Vector(tst, "plane c", 1e-17, o.PlaneC, []float64{0, 0, 0, 0, 1, 1})
	chk.Vector(tst, "plane d", 1e-17, o.PlaneD, []float64{0, 4, 0, 6, 100, 126})

	// integer-valued ramp: cell envelopes are the corner extrema
	chk.Scalar(tst, "Zmin cell (0,0)", 1e-17, o.ZminCell[0][0], 100)
	chk.Scalar(tst, "Zmax cell (0,0)", 1e-17, o.ZmaxCell[0][0], 105)
	chk.Scalar(tst, "Zmin cell (3,5)", 1e-17, o.ZminCell[3][5], 121)
	chk.Scalar(tst, "Zmax cell (3,5)", 1e-17, o.ZmaxCell[3][5], 126)

	// fractional elevations keep adjacent envelopes overlapping: floor the
	// minimum and ceil the maximum
	zfrac := la.MatAlloc(2, 2)
	zfrac[0][0], zfrac[0][1] = 100.3, 100.3
	zfrac[1][0], zfrac[1][1] = 100.3, 100.3
	flat, err := New(zfrac, 0, 0, 1, 1, "ellipsoid", 0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "flat Zmin cell", 1e-17, flat.ZminCell[0][0], 100)
	chk.Scalar(tst, "flat Zmax cell", 1e-17, flat.ZmaxCell[0][0], 101)

	// invalid input
	if _, err := New(la.MatAlloc(1, 4), 0, 0, 1, 1, "", 0); err == nil {
		tst.Errorf("New should have failed with a single row\n")
		return
	}
	if _, err := New(la.MatAlloc(3, 3), 0, 0, 0, 1, "", 0); err == nil {
		tst.Errorf("New should have failed with a zero pixel size\n")
		return
	}
	if _, err := New(la.MatAlloc(3, 3), 0, 0, 1, 1, "mars", 0); err == nil {
		tst.Errorf("New should have failed with an unknown datum\n")
		return
	}
}

func Test_dtm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dtm02. ground/grid frame transforms")

	o := rampDTM(tst, 5, 7)

	// ground x maps to grid col and ground y to grid row
	idx := o.TerToIndex([3]float64{11.75, 20.625, 115.5})
	chk.Scalar(tst, "row", 1e-14, idx[0], 2.5)
	chk.Scalar(tst, "col", 1e-14, idx[1], 3.5)
	chk.Scalar(tst, "z", 1e-17, idx[2], 115.5)

	// round trip
	ter := o.IndexToTer(idx)
	chk.Scalar(tst, "x", 1e-14, ter[0], 11.75)
	chk.Scalar(tst, "y", 1e-14, ter[1], 20.625)
	chk.Scalar(tst, "z", 1e-17, ter[2], 115.5)
}

func Test_dtm03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dtm03. bilinear interpolation")

	o := rampDTM(tst, 5, 7)

	// nodes are reproduced exactly
	chk.Scalar(tst, "node (0,0)", 1e-17, o.Interpolate(0, 0), 100)
	chk.Scalar(tst, "node (4,6)", 1e-17, o.Interpolate(4, 6), 126)

	// a plane is interpolated exactly anywhere inside
	chk.Scalar(tst, "inside (2.5,3.5)", 1e-13, o.Interpolate(2.5, 3.5), 115.5)
	chk.Scalar(tst, "inside (0.25,5.75)", 1e-13, o.Interpolate(0.25, 5.75), 117.75)

	// out-of-grid queries extrapolate with the last full cell, and a plane
	// extrapolates exactly
	chk.Scalar(tst, "extrapolated row", 1e-13, o.Interpolate(-0.5, 2), 105)
	chk.Scalar(tst, "extrapolated col", 1e-13, o.Interpolate(2, 7.5), 126.5)
}

func Test_dtm04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dtm04. LOS vs bounding cube")

	o := rampDTM(tst, 5, 7)

	// vertical LOS above grid point (row=2.5, col=3.5): clipped by the
	// z=Zmax and z=Zmin faces
	los := [2][3]float64{{11.75, 20.625, 130}, {11.75, 20.625, 90}}
	valid, tEnter, tExit, cube, alts := o.IntersectCube(los)
	if !valid {
		tst.Errorf("LOS through the cube must be valid\n")
		return
	}
	chk.Scalar(tst, "t enter", 1e-14, tEnter, 0.1)
	chk.Scalar(tst, "t exit", 1e-14, tExit, 0.75)
	chk.Scalar(tst, "entry row", 1e-13, cube[0][0], 2.5)
	chk.Scalar(tst, "entry col", 1e-13, cube[0][1], 3.5)
	chk.Scalar(tst, "entry alt", 1e-13, alts[0], 126)
	chk.Scalar(tst, "exit alt", 1e-13, alts[1], 100)

	// LOS fully outside the grid footprint
	los = [2][3]float64{{50, 60, 130}, {50, 60, 90}}
	valid, _, _, _, _ = o.IntersectCube(los)
	if valid {
		tst.Errorf("LOS outside the cube must be invalid\n")
		return
	}

	// LOS fully above the cube
	los = [2][3]float64{{11.75, 20.625, 500}, {11.75, 20.625, 300}}
	valid, _, _, _, _ = o.IntersectCube(los)
	if valid {
		tst.Errorf("LOS above the cube must be invalid\n")
		return
	}
}

func Test_dtm05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dtm05. LOS vs terrain surface")

	o := rampDTM(tst, 5, 7)

	// vertical LOS: the surface altitude has a closed form
	los := [2][3]float64{{11.75, 20.625, 130}, {11.75, 20.625, 90}}
	valid, _, _, cube, alts := o.IntersectCube(los)
	if !valid {
		tst.Errorf("LOS through the cube must be valid\n")
		return
	}
	found, point := o.Intersection(los, cube, alts)
	if !found {
		tst.Errorf("vertical LOS must hit the surface\n")
		return
	}
	chk.Scalar(tst, "x", 1e-12, point[0], 11.75)
	chk.Scalar(tst, "y", 1e-12, point[1], 20.625)
	chk.Scalar(tst, "z", 1e-10, point[2], 115.5)

	// oblique LOS crossing several cells: the hit must lie on the surface
	losIdx := [2][3]float64{{0.3, 0.4, 128}, {3.8, 5.9, 101}}
	los = [2][3]float64{o.IndexToTer(losIdx[0]), o.IndexToTer(losIdx[1])}
	valid, _, _, cube, alts = o.IntersectCube(los)
	if !valid {
		tst.Errorf("oblique LOS through the cube must be valid\n")
		return
	}
	found, point = o.Intersection(los, cube, alts)
	if !found {
		tst.Errorf("oblique LOS must hit the surface\n")
		return
	}
	idx := o.TerToIndex(point)
	chk.Scalar(tst, "z on surface", 1e-9, point[2], 100+2*idx[0]+3*idx[1])
	chk.Scalar(tst, "z interpolated", 1e-9, point[2], o.Interpolate(idx[0], idx[1]))

	// a segment that stays above the surface yields no root
	losIdx = [2][3]float64{{0.2, 5.6, 125.5}, {0.6, 5.9, 124.5}}
	los = [2][3]float64{o.IndexToTer(losIdx[0]), o.IndexToTer(losIdx[1])}
	valid, _, _, cube, alts = o.IntersectCube(los)
	if !valid {
		tst.Errorf("grazing LOS through the cube must be valid\n")
		return
	}
	found, _ = o.Intersection(los, cube, alts)
	if found {
		tst.Errorf("grazing LOS must not hit the surface\n")
		return
	}
}
