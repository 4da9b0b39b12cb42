// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

// InverseLocS is the scalar convenience of InverseLoc
func (o *Model) InverseLocS(lon, lat, alt float64) (row, col float64, err error) {
	rows, cols, err := o.InverseLoc([]float64{lon}, []float64{lat}, []float64{alt})
	if err != nil {
		return
	}
	return rows[0], cols[0], nil
}

// DirectLocHS is the scalar convenience of DirectLocH
func (o *Model) DirectLocHS(row, col, alt float64, fillNan bool) (lon, lat float64, err error) {
	lons, lats, err := o.DirectLocH([]float64{row}, []float64{col}, alt, fillNan)
	if err != nil {
		return
	}
	return lons[0], lats[0], nil
}

// DirectLocInverseIterativeS is the scalar convenience of DirectLocInverseIterative
func (o *Model) DirectLocInverseIterativeS(row, col, alt float64, nbIterMax int, fillNan bool) (lon, lat float64, err error) {
	lons, lats, err := o.DirectLocInverseIterative([]float64{row}, []float64{col}, alt, nbIterMax, fillNan)
	if err != nil {
		return
	}
	return lons[0], lats[0], nil
}
