// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/adebardo/shareloc/dtm"
	"github.com/adebardo/shareloc/rfm"
)

// InverseLoc computes the sensor positions (row, col) observing the ground
// positions (lon, lat, alt). alt is broadcast when it holds a single value.
// Normalized inputs beyond LimExtrapol are flagged with a warning and
// evaluated anyway. Fails when the inverse coefficients are absent
func (o *Model) InverseLoc(lon, lat, alt []float64) (row, col []float64, err error) {
	if o.Inv == nil {
		return nil, nil, chk.Err("inverse localization cannot be performed, inverse coefficients have not been defined")
	}
	n := len(lon)
	if len(lat) != n {
		return nil, nil, chk.Err("lon and lat must have the same size. %d != %d", n, len(lat))
	}
	if len(alt) != n && len(alt) != 1 {
		return nil, nil, chk.Err("alt must have size %d or 1. %d is invalid", n, len(alt))
	}
	row = make([]float64, n)
	col = make([]float64, n)
	var m [rfm.Nterms]float64
	for i := 0; i < n; i++ {
		a := alt[0]
		if len(alt) > 1 {
			a = alt[i]
		}
		lonN := o.Lon.norm(lon[i])
		latN := o.Lat.norm(lat[i])
		altN := o.Alt.norm(a)
		o.warnExtrapol("longitude", lonN, lon[i])
		o.warnExtrapol("latitude", latN, lat[i])
		o.warnExtrapol("altitude", altN, a)
		rfm.Monomes(m[:], lonN, latN, altN)
		col[i] = o.Col.denorm(rfm.Dot(o.Inv.NumCol, m[:]) / rfm.Dot(o.Inv.DenCol, m[:]))
		row[i] = o.Row.denorm(rfm.Dot(o.Inv.NumRow, m[:]) / rfm.Dot(o.Inv.DenRow, m[:]))
	}
	return
}

// DirectLocH computes the ground positions (lon, lat) observed by the sensor
// positions (row, col) at constant altitude alt. The direct coefficients are
// used when present; otherwise the computation delegates to the iterative
// inversion of the inverse map.
//
// Positions where row or col is NaN receive (Lon.Off, Lat.Off) when fillNan
// is true and NaN otherwise; the polynomial is only evaluated on the valid
// subset. The altitude of every output point is alt, unchanged
func (o *Model) DirectLocH(row, col []float64, alt float64, fillNan bool) (lon, lat []float64, err error) {
	if o.Dir == nil {
		io.Pf("direct localization from inverse iterative\n")
		return o.DirectLocInverseIterative(row, col, alt, 10, fillNan)
	}
	n := len(row)
	if len(col) != n {
		return nil, nil, chk.Err("row and col must have the same size. %d != %d", n, len(col))
	}
	lon, lat = o.nanOutputs(n, fillNan)
	altN := o.Alt.norm(alt)
	o.warnExtrapol("altitude", altN, alt)
	var m [rfm.Nterms]float64
	for _, i := range filterNan(row, col) {
		colN := o.Col.norm(col[i])
		rowN := o.Row.norm(row[i])
		o.warnExtrapol("column", colN, col[i])
		o.warnExtrapol("line", rowN, row[i])
		rfm.Monomes(m[:], colN, rowN, altN)
		lon[i] = o.Lon.denorm(rfm.Dot(o.Dir.NumLon, m[:]) / rfm.Dot(o.Dir.DenLon, m[:]))
		lat[i] = o.Lat.denorm(rfm.Dot(o.Dir.NumLat, m[:]) / rfm.Dot(o.Dir.DenLat, m[:]))
	}
	return
}

// DirectLocGridH computes direct localizations on a regular sensor grid at
// constant altitude. The returned 2-D arrays have shape (nbrow, nbcol) and
// hold longitudes and latitudes
func (o *Model) DirectLocGridH(row0, col0, steprow, stepcol float64, nbrow, nbcol int, alt float64) (gridLon, gridLat [][]float64, err error) {
	if nbrow < 1 || nbcol < 1 {
		return nil, nil, chk.Err("grid size must be positive. nbrow=%d nbcol=%d is invalid", nbrow, nbcol)
	}
	gridLon = la.MatAlloc(nbrow, nbcol)
	gridLat = la.MatAlloc(nbrow, nbcol)
	for j := 0; j < nbcol; j++ {
		c := col0 + stepcol*float64(j)
		for i := 0; i < nbrow; i++ {
			r := row0 + steprow*float64(i)
			lon, lat, e := o.DirectLocHS(r, c, alt, false)
			if e != nil {
				return nil, nil, e
			}
			gridLon[i][j] = lon
			gridLat[i][j] = lat
		}
	}
	return
}

// LosExtrema returns the two ground points of the line of sight through the
// sensor position (row, col): the point at altMax first, the point at altMin
// second. NaN altitudes select the model's altitude validity interval
func (o *Model) LosExtrema(row, col, altMin, altMax float64, fillNan bool) (los [2][3]float64, err error) {
	if math.IsNaN(altMin) || math.IsNaN(altMax) {
		altMin, altMax = o.AltMinMax()
	}
	lon, lat, err := o.DirectLocHS(row, col, altMax, fillNan)
	if err != nil {
		return
	}
	los[0] = [3]float64{lon, lat, altMax}
	lon, lat, err = o.DirectLocHS(row, col, altMin, fillNan)
	if err != nil {
		return
	}
	los[1] = [3]float64{lon, lat, altMin}
	return
}

// DirectLocDTM computes the ground position observed by the sensor position
// (row, col) on the terrain surface: the line of sight spanning the altitude
// range of the DTM (widened by one meter on each side) is clipped against the
// DTM bounding cube and intersected with the interpolated surface
func (o *Model) DirectLocDTM(row, col float64, d *dtm.DTM) (point [3]float64, err error) {
	zmin, zmax := d.AltMinMax()
	los, err := o.LosExtrema(row, col, zmin-1.0, zmax+1.0, false)
	if err != nil {
		return
	}
	valid, _, _, cube, alts := d.IntersectCube(los)
	if !valid {
		return point, chk.Err("line of sight does not intersect the DTM cube")
	}
	found, point := d.Intersection(los, cube, alts)
	if !found {
		return point, chk.Err("no intersection between the line of sight and the DTM surface")
	}
	return point, nil
}
