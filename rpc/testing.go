// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/cpmech/gosl/chk"

	"github.com/adebardo/shareloc/rfm"
)

// sparseCoeffs returns a length-rfm.Nterms coefficient set with the given
// nonzero entries (term index => coefficient)
func sparseCoeffs(entries map[int]float64) []float64 {
	c := make([]float64, rfm.Nterms)
	for i, v := range entries {
		c[i] = v
	}
	return c
}

// testNorms returns the normalization pairs shared by the synthetic models:
// col, row, alt, lon, lat
func testNorms() (col, row, alt, lon, lat Norm) {
	col = Norm{Off: 1000, Scl: 1000}
	row = Norm{Off: 2000, Scl: 2000}
	alt = Norm{Off: 575, Scl: 85}
	lon = Norm{Off: 7.0, Scl: 0.1}
	lat = Norm{Off: 43.7, Scl: 0.1}
	return
}

// affineTestModel returns a model whose direct and inverse maps are exact
// affine inverses of each other:
//  direct:  lonN = colN + 0.01·altN   latN = rowN + 0.02·altN
//  inverse: colN = lonN - 0.01·altN   rowN = latN - 0.02·altN
// so round trips are exact and every line of sight is a straight line in
// (lon, lat, alt)
func affineTestModel() *Model {
	dir := &DirCoeffs{
		NumLon: sparseCoeffs(map[int]float64{1: 1, 3: 0.01}),
		DenLon: sparseCoeffs(map[int]float64{0: 1}),
		NumLat: sparseCoeffs(map[int]float64{2: 1, 3: 0.02}),
		DenLat: sparseCoeffs(map[int]float64{0: 1}),
	}
	inv := &InvCoeffs{
		NumCol: sparseCoeffs(map[int]float64{1: 1, 3: -0.01}),
		DenCol: sparseCoeffs(map[int]float64{0: 1}),
		NumRow: sparseCoeffs(map[int]float64{2: 1, 3: -0.02}),
		DenRow: sparseCoeffs(map[int]float64{0: 1}),
	}
	o, err := New(dir, inv, testNorms())
	if err != nil {
		chk.Panic("cannot build affine test model: %v", err)
	}
	return o
}

// nonlinTestModel returns an inverse-only model with mild nonlinear terms and
// nontrivial denominators, for exercising the analytic Jacobian and the
// Newton inversion:
//  colN = (lonN + 0.03·lonN·latN + 0.01·lonN² + 0.005·altN) / (1 + 0.001·lonN)
//  rowN = (latN - 0.02·lonN·latN + 0.015·latN² + 0.004·altN) / (1 + 0.002·latN)
func nonlinTestModel() *Model {
	inv := &InvCoeffs{
		NumCol: sparseCoeffs(map[int]float64{1: 1, 4: 0.03, 7: 0.01, 3: 0.005}),
		DenCol: sparseCoeffs(map[int]float64{0: 1, 1: 0.001}),
		NumRow: sparseCoeffs(map[int]float64{2: 1, 4: -0.02, 8: 0.015, 3: 0.004}),
		DenRow: sparseCoeffs(map[int]float64{0: 1, 2: 0.002}),
	}
	o, err := New(nil, inv, testNorms())
	if err != nil {
		chk.Panic("cannot build nonlinear test model: %v", err)
	}
	return o
}

// directOnlyTestModel returns a model carrying only direct coefficients
func directOnlyTestModel() *Model {
	dir := &DirCoeffs{
		NumLon: sparseCoeffs(map[int]float64{1: 1}),
		DenLon: sparseCoeffs(map[int]float64{0: 1}),
		NumLat: sparseCoeffs(map[int]float64{2: 1}),
		DenLat: sparseCoeffs(map[int]float64{0: 1}),
	}
	o, err := New(dir, nil, testNorms())
	if err != nil {
		chk.Panic("cannot build direct-only test model: %v", err)
	}
	return o
}
