// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package loc implements the localization facade: it dispatches direct,
// inverse and direct-on-DTM calls to an underlying geometric model without
// exposing which model is in use
package loc

import (
	"github.com/cpmech/gosl/chk"

	"github.com/adebardo/shareloc/dtm"
)

// Model defines the geometric models the facade can dispatch to
type Model interface {
	DirectLocH(row, col []float64, alt float64, fillNan bool) (lon, lat []float64, err error)
	InverseLoc(lon, lat, alt []float64) (row, col []float64, err error)
	DirectLocDTM(row, col float64, d *dtm.DTM) (point [3]float64, err error)
}

// Localization ties a geometric model to an optional terrain model. It
// borrows both; they must outlive the facade
type Localization struct {
	model Model
	dtm   *dtm.DTM
}

// New returns a localization facade. d may be nil when no terrain
// intersection is needed
func New(model Model, d *dtm.DTM) *Localization {
	return &Localization{model: model, dtm: d}
}

// Direct computes the ground position (lon, lat) observed by the sensor
// position (row, col) at constant altitude h
func (o *Localization) Direct(row, col, h float64) (lon, lat float64, err error) {
	lons, lats, err := o.model.DirectLocH([]float64{row}, []float64{col}, h, false)
	if err != nil {
		return
	}
	return lons[0], lats[0], nil
}

// Inverse computes the sensor position (row, col) observing the ground
// position (lon, lat) at altitude h
func (o *Localization) Inverse(lon, lat, h float64) (row, col float64, err error) {
	rows, cols, err := o.model.InverseLoc([]float64{lon}, []float64{lat}, []float64{h})
	if err != nil {
		return
	}
	return rows[0], cols[0], nil
}

// DirectDTM computes the ground position observed by the sensor position
// (row, col) on the terrain surface. Fails when the facade has no DTM
func (o *Localization) DirectDTM(row, col float64) (point [3]float64, err error) {
	if o.dtm == nil {
		return point, chk.Err("direct localization on DTM needs a DTM")
	}
	return o.model.DirectLocDTM(row, col, o.dtm)
}
