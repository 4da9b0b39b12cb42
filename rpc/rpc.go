// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rpc implements the rational polynomial coefficients (RPC) camera
// model: direct localization (sensor to ground), inverse localization (ground
// to sensor), analytic Jacobians of the inverse map, iterative inversion when
// only one coefficient set is given, and intersection of sensor lines of
// sight with a terrain model.
//
// Batched operations take 1-D float64 slices and preserve element order in
// the outputs; scalar convenience wrappers are provided on top
package rpc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adebardo/shareloc/rfm"
)

// Direction identifies which coefficient sets a model carries
type Direction int

const (
	// InverseOnly means only (lon,lat,alt) -> (col,row) coefficients are present
	InverseOnly Direction = iota
	// DirectOnly means only (col,row,alt) -> (lon,lat) coefficients are present
	DirectOnly
	// Both means both coefficient sets are present
	Both
)

// InvCoeffs holds the inverse rational maps (lon,lat,alt) -> (col,row).
// Each slice has rfm.Nterms coefficients
type InvCoeffs struct {
	NumCol []float64
	DenCol []float64
	NumRow []float64
	DenRow []float64
}

// DirCoeffs holds the direct rational maps (col,row,alt) -> (lon,lat).
// Each slice has rfm.Nterms coefficients
type DirCoeffs struct {
	NumLon []float64
	DenLon []float64
	NumLat []float64
	DenLat []float64
}

// Norm holds one normalization pair: normalized = (raw - Off) / Scl
type Norm struct {
	Off float64
	Scl float64
}

// Model is an RPC camera model. Immutable after New
type Model struct {

	// coefficients. nil marks an absent direction
	Dir *DirCoeffs
	Inv *InvCoeffs

	// normalization pairs
	Col Norm
	Row Norm
	Alt Norm
	Lon Norm
	Lat Norm

	// extrapolation tolerance in normalized units. evaluations beyond this
	// threshold are flagged with a warning and never rejected
	LimExtrapol float64
}

// New builds an RPC model and validates its coefficients.
// At least one of dir/inv must be non-nil, every coefficient slice must have
// rfm.Nterms entries and every scale must be nonzero
func New(dir *DirCoeffs, inv *InvCoeffs, col, row, alt, lon, lat Norm) (o *Model, err error) {
	if dir == nil && inv == nil {
		return nil, chk.Err("rpc model needs at least one of the direct or inverse coefficient sets")
	}
	if dir != nil {
		for name, c := range map[string][]float64{"Num_X": dir.NumLon, "Den_X": dir.DenLon, "Num_Y": dir.NumLat, "Den_Y": dir.DenLat} {
			if len(c) != rfm.Nterms {
				return nil, chk.Err("direct coefficients %s must have %d terms. %d is invalid", name, rfm.Nterms, len(c))
			}
		}
	}
	if inv != nil {
		for name, c := range map[string][]float64{"Num_COL": inv.NumCol, "Den_COL": inv.DenCol, "Num_LIG": inv.NumRow, "Den_LIG": inv.DenRow} {
			if len(c) != rfm.Nterms {
				return nil, chk.Err("inverse coefficients %s must have %d terms. %d is invalid", name, rfm.Nterms, len(c))
			}
		}
	}
	for name, n := range map[string]Norm{"COL": col, "LIG": row, "ALT": alt, "X": lon, "Y": lat} {
		if n.Scl == 0 {
			return nil, chk.Err("normalization scale %s must be nonzero", name)
		}
	}
	o = &Model{
		Dir: dir, Inv: inv,
		Col: col, Row: row, Alt: alt, Lon: lon, Lat: lat,
		LimExtrapol: 1.0001,
	}
	return
}

// Direction reports which coefficient sets this model carries
func (o *Model) Direction() Direction {
	switch {
	case o.Dir != nil && o.Inv != nil:
		return Both
	case o.Dir != nil:
		return DirectOnly
	}
	return InverseOnly
}

// AltMinMax returns the altitude validity interval of the model
func (o *Model) AltMinMax() (altMin, altMax float64) {
	return o.Alt.Off - o.Alt.Scl/2.0, o.Alt.Off + o.Alt.Scl/2.0
}

// norm returns the normalized value of v
func (n Norm) norm(v float64) float64 {
	return (v - n.Off) / n.Scl
}

// denorm returns the raw value of normalized v
func (n Norm) denorm(v float64) float64 {
	return v*n.Scl + n.Off
}

// warnExtrapol flags evaluations beyond the extrapolation tolerance.
// The input is never rejected nor clamped
func (o *Model) warnExtrapol(name string, normalized, raw float64) {
	if math.Abs(normalized) > o.LimExtrapol {
		io.Pfyel("point is extrapolated in %s: normalized value = %g (raw = %g)\n", name, normalized, raw)
	}
}

// nanOutputs allocates a pair of output buffers prefilled with the value
// substituted at NaN-masked positions: (lon, lat) offsets when fillNan is
// true, NaN otherwise
func (o *Model) nanOutputs(n int, fillNan bool) (x, y []float64) {
	xval, yval := math.NaN(), math.NaN()
	if fillNan {
		xval, yval = o.Lon.Off, o.Lat.Off
	}
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xval
		y[i] = yval
	}
	return
}

// filterNan returns the indices of the points whose row and col are both valid
func filterNan(row, col []float64) (idx []int) {
	idx = make([]int, 0, len(row))
	for i := range row {
		if !math.IsNaN(row[i]) && !math.IsNaN(col[i]) {
			idx = append(idx, i)
		}
	}
	return
}
