// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/adebardo/shareloc/rfm"
)

// DerivativesInv computes the analytic partial derivatives of the inverse map
// at the ground positions (lon, lat, alt):
//  dcol/dlon, dcol/dlat, drow/dlon, drow/dlat
// using the quotient rule (u/v)' = (u'v - v'u)/v² on the normalized rational
// maps, scaled back to raw units. Fails when the inverse coefficients are
// absent
func (o *Model) DerivativesInv(lon, lat []float64, alt float64) (dColDLon, dColDLat, dRowDLon, dRowDLat []float64, err error) {
	if o.Inv == nil {
		err = chk.Err("inverse derivatives cannot be computed, inverse coefficients have not been defined")
		return
	}
	n := len(lon)
	if len(lat) != n {
		err = chk.Err("lon and lat must have the same size. %d != %d", n, len(lat))
		return
	}
	dColDLon = make([]float64, n)
	dColDLat = make([]float64, n)
	dRowDLon = make([]float64, n)
	dRowDLat = make([]float64, n)
	altN := o.Alt.norm(alt)
	var m, m1, m2 [rfm.Nterms]float64
	for i := 0; i < n; i++ {
		lonN := o.Lon.norm(lon[i])
		latN := o.Lat.norm(lat[i])
		rfm.Monomes(m[:], lonN, latN, altN)
		rfm.Eval(m1[:], &rfm.Deriv1, lonN, latN, altN)
		rfm.Eval(m2[:], &rfm.Deriv2, lonN, latN, altN)

		numCol := rfm.Dot(o.Inv.NumCol, m[:])
		denCol := rfm.Dot(o.Inv.DenCol, m[:])
		numRow := rfm.Dot(o.Inv.NumRow, m[:])
		denRow := rfm.Dot(o.Inv.DenRow, m[:])

		numColDLon := rfm.Dot(o.Inv.NumCol, m1[:])
		denColDLon := rfm.Dot(o.Inv.DenCol, m1[:])
		numRowDLon := rfm.Dot(o.Inv.NumRow, m1[:])
		denRowDLon := rfm.Dot(o.Inv.DenRow, m1[:])

		numColDLat := rfm.Dot(o.Inv.NumCol, m2[:])
		denColDLat := rfm.Dot(o.Inv.DenCol, m2[:])
		numRowDLat := rfm.Dot(o.Inv.NumRow, m2[:])
		denRowDLat := rfm.Dot(o.Inv.DenRow, m2[:])

		dColDLon[i] = o.Col.Scl / o.Lon.Scl * (numColDLon*denCol - denColDLon*numCol) / (denCol * denCol)
		dColDLat[i] = o.Col.Scl / o.Lat.Scl * (numColDLat*denCol - denColDLat*numCol) / (denCol * denCol)
		dRowDLon[i] = o.Row.Scl / o.Lon.Scl * (numRowDLon*denRow - denRowDLon*numRow) / (denRow * denRow)
		dRowDLat[i] = o.Row.Scl / o.Lat.Scl * (numRowDLat*denRow - denRowDLat*numRow) / (denRow * denRow)
	}
	return
}

// DirectLocInverseIterative computes direct localizations by Newton iteration
// on the inverse map. Starting from the scene center (Lon.Off, Lat.Off), the
// residual between the target sensor positions and the inverse localization
// of the current estimate is reduced with 2×2 Newton steps until every
// residual is below 1e-6 pixels or nbIterMax iterations are done; only the
// points whose residual still exceeds the threshold are refined further.
//
// The result is best-effort: when nbIterMax is exhausted the last iterate is
// returned without error.
//
// NaN positions follow the DirectLocH substitution policy. Fails when the
// inverse coefficients are absent
func (o *Model) DirectLocInverseIterative(row, col []float64, alt float64, nbIterMax int, fillNan bool) (lon, lat []float64, err error) {
	if o.Inv == nil {
		return nil, nil, chk.Err("inverse localization cannot be performed, inverse coefficients have not been defined")
	}
	n := len(row)
	if len(col) != n {
		return nil, nil, chk.Err("row and col must have the same size. %d != %d", n, len(col))
	}
	lon, lat = o.nanOutputs(n, fillNan)

	// valid subset
	idx := filterNan(row, col)
	k := len(idx)
	if k == 0 {
		return
	}
	rowT := make([]float64, k) // target sensor positions
	colT := make([]float64, k)
	for q, i := range idx {
		rowT[q] = row[i]
		colT[q] = col[i]
	}

	// initial estimate at the scene center
	lonW := make([]float64, k)
	latW := make([]float64, k)
	for q := 0; q < k; q++ {
		lonW[q] = o.Lon.Off
		latW[q] = o.Lat.Off
	}
	altV := []float64{alt}

	// initial residuals
	rowEst, colEst, err := o.InverseLoc(lonW, latW, altV)
	if err != nil {
		return nil, nil, err
	}
	dRow := make([]float64, k)
	dCol := make([]float64, k)
	for q := 0; q < k; q++ {
		dRow[q] = rowT[q] - rowEst[q]
		dCol[q] = colT[q] - colEst[q]
	}

	// desired precision in pixels
	const eps = 1e-6

	for it := 0; it < nbIterMax && maxAbsResidual(dRow, dCol) > eps; it++ {

		// points that require another iteration
		sub := make([]int, 0, k)
		for q := 0; q < k; q++ {
			if math.Abs(dRow[q]) > eps || math.Abs(dCol[q]) > eps {
				sub = append(sub, q)
			}
		}
		lonS := gather(lonW, sub)
		latS := gather(latW, sub)

		// 2×2 Newton step solved with Cramer's rule
		dColDLon, dColDLat, dRowDLon, dRowDLat, e := o.DerivativesInv(lonS, latS, alt)
		if e != nil {
			return nil, nil, e
		}
		for p, q := range sub {
			det := dColDLon[p]*dRowDLat[p] - dRowDLon[p]*dColDLat[p]
			lonW[q] += (dRowDLat[p]*dCol[q] - dColDLat[p]*dRow[q]) / det
			latW[q] += (-dRowDLon[p]*dCol[q] + dColDLon[p]*dRow[q]) / det
		}

		// updated residuals on the refined subset
		rowEstS, colEstS, e := o.InverseLoc(gather(lonW, sub), gather(latW, sub), altV)
		if e != nil {
			return nil, nil, e
		}
		for p, q := range sub {
			dRow[q] = rowT[q] - rowEstS[p]
			dCol[q] = colT[q] - colEstS[p]
		}
	}

	// scatter back in input order
	for q, i := range idx {
		lon[i] = lonW[q]
		lat[i] = latW[q]
	}
	return
}

// maxAbsResidual returns the largest absolute residual over both components
func maxAbsResidual(dRow, dCol []float64) (res float64) {
	for q := range dRow {
		if v := math.Abs(dRow[q]); v > res {
			res = v
		}
		if v := math.Abs(dCol[q]); v > res {
			res = v
		}
	}
	return
}

// gather returns v at the given indices
func gather(v []float64, idx []int) (res []float64) {
	res = make([]float64, len(idx))
	for p, q := range idx {
		res[p] = v[q]
	}
	return
}
