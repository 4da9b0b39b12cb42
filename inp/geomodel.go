// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from geomodel and DTM JSON files
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adebardo/shareloc/rpc"
)

// GeoModel holds the coefficient bundle of a rational polynomial camera model
// as produced by the format drivers (DIMAP v1/v2, OSSIM keyword list,
// Euclidium, GeoTIFF tags). Coordinates follow the center convention: pixel
// (0, 0) is the center of the top left pixel. Either the direct or the
// inverse coefficient arrays may be absent (null)
type GeoModel struct {

	// identification
	DriverType string `json:"driver_type"` // producing driver; e.g. "dimap_v2.15"
	Epsg       int    `json:"epsg"`        // geographic CRS; 0 means 4326
	Datum      string `json:"datum"`       // "ellipsoid" or "geoid"; empty means "ellipsoid"

	// direct coefficients (col,row,alt) -> (lon,lat)
	NumX []float64 `json:"num_x"`
	DenX []float64 `json:"den_x"`
	NumY []float64 `json:"num_y"`
	DenY []float64 `json:"den_y"`

	// inverse coefficients (lon,lat,alt) -> (col,row)
	NumCol []float64 `json:"num_col"`
	DenCol []float64 `json:"den_col"`
	NumLig []float64 `json:"num_lig"`
	DenLig []float64 `json:"den_lig"`

	// normalization pairs
	OffsetCol float64 `json:"offset_col"`
	ScaleCol  float64 `json:"scale_col"`
	OffsetLig float64 `json:"offset_lig"`
	ScaleLig  float64 `json:"scale_lig"`
	OffsetAlt float64 `json:"offset_alt"`
	ScaleAlt  float64 `json:"scale_alt"`
	OffsetX   float64 `json:"offset_x"`
	ScaleX    float64 `json:"scale_x"`
	OffsetY   float64 `json:"offset_y"`
	ScaleY    float64 `json:"scale_y"`
}

// ReadGeoModel reads a geomodel bundle from a JSON file
func ReadGeoModel(dir, fn string) (o *GeoModel, err error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read geomodel file. %v", err)
	}
	o = new(GeoModel)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal geomodel file %q. %v", fn, err)
	}
	if o.Epsg == 0 {
		o.Epsg = 4326
	}
	if o.Datum == "" {
		o.Datum = "ellipsoid"
	}
	return
}

// HasDirect tells whether the bundle carries direct coefficients
func (o *GeoModel) HasDirect() bool {
	return o.NumX != nil || o.DenX != nil || o.NumY != nil || o.DenY != nil
}

// HasInverse tells whether the bundle carries inverse coefficients
func (o *GeoModel) HasInverse() bool {
	return o.NumCol != nil || o.DenCol != nil || o.NumLig != nil || o.DenLig != nil
}

// Model builds the RPC model from the bundle. With topLeftConvention, pixel
// (0, 0) becomes the top left corner of the top left pixel: 0.5 pixel is
// added to the row and column offsets
func (o *GeoModel) Model(topLeftConvention bool) (m *rpc.Model, err error) {
	var dir *rpc.DirCoeffs
	var inv *rpc.InvCoeffs
	if o.HasDirect() {
		dir = &rpc.DirCoeffs{NumLon: o.NumX, DenLon: o.DenX, NumLat: o.NumY, DenLat: o.DenY}
	}
	if o.HasInverse() {
		inv = &rpc.InvCoeffs{NumCol: o.NumCol, DenCol: o.DenCol, NumRow: o.NumLig, DenRow: o.DenLig}
	}
	shift := 0.0
	if topLeftConvention {
		shift = 0.5
	}
	return rpc.New(dir, inv,
		rpc.Norm{Off: o.OffsetCol + shift, Scl: o.ScaleCol},
		rpc.Norm{Off: o.OffsetLig + shift, Scl: o.ScaleLig},
		rpc.Norm{Off: o.OffsetAlt, Scl: o.ScaleAlt},
		rpc.Norm{Off: o.OffsetX, Scl: o.ScaleX},
		rpc.Norm{Off: o.OffsetY, Scl: o.ScaleY},
	)
}
