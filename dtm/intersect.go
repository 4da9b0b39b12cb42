// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtm

import (
	"math"
	"sort"
)

// IntersectCube clips a line of sight against the bounding cube of the DTM.
// los holds two endpoints in the ground frame, the first one at the highest
// altitude. The clip keeps the maximum of the per-face entry parameters and
// the minimum of the exit parameters; the segment misses the cube when the
// entry exceeds the exit.
//
// Returns the clipped endpoints in the grid frame and their altitudes.
// valid is false when the line of sight misses the cube
func (o *DTM) IntersectCube(los [2][3]float64) (valid bool, tEnter, tExit float64, cube [2][3]float64, alts [2]float64) {

	// segment in grid frame
	pA := o.TerToIndex(los[0])
	pB := o.TerToIndex(los[1])
	dir := [3]float64{pB[0] - pA[0], pB[1] - pA[1], pB[2] - pA[2]}

	// clip against the three pairs of faces. faces 2k and 2k+1 share the
	// same normal (a, b, c) and bound the slab d[2k] <= a·row+b·col+c·z <= d[2k+1]
	tEnter, tExit = 0.0, 1.0
	for k := 0; k < 6; k += 2 {
		v0 := o.PlaneA[k]*pA[0] + o.PlaneB[k]*pA[1] + o.PlaneC[k]*pA[2]
		dv := o.PlaneA[k]*dir[0] + o.PlaneB[k]*dir[1] + o.PlaneC[k]*dir[2]
		dlo, dhi := o.PlaneD[k], o.PlaneD[k+1]
		if dv == 0 {
			if v0 < dlo || v0 > dhi {
				return false, 0, 0, cube, alts
			}
			continue
		}
		t1 := (dlo - v0) / dv
		t2 := (dhi - v0) / dv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
	}
	if tEnter > tExit {
		return false, tEnter, tExit, cube, alts
	}

	// clipped endpoints
	for i := 0; i < 3; i++ {
		cube[0][i] = pA[i] + tEnter*dir[i]
		cube[1][i] = pA[i] + tExit*dir[i]
	}
	alts[0], alts[1] = cube[0][2], cube[1][2]
	valid = true
	return
}

// Intersection walks the cells crossed by the clipped segment, from the entry
// endpoint to the exit endpoint, and returns the first point where the segment
// pierces the bilinearly interpolated terrain surface.
//
// Within one cell the surface restricted to the segment is a quadratic in the
// segment parameter; the smallest root inside the cell interval wins. Cells
// whose altitude envelope does not overlap the segment altitude range are
// rejected without solving.
//
// cube and alts are the outputs of IntersectCube. found is false when the
// whole clipped segment yields no root
func (o *DTM) Intersection(los [2][3]float64, cube [2][3]float64, alts [2]float64) (found bool, point [3]float64) {

	pA, pB := cube[0], cube[1]
	pA[2], pB[2] = alts[0], alts[1]
	dR := pB[0] - pA[0]
	dC := pB[1] - pA[1]
	dZ := pB[2] - pA[2]

	// segment parameters of the integer row/col crossings
	us := make([]float64, 2, 16)
	us[0], us[1] = 0, 1
	us = appendCrossings(us, pA[0], dR)
	us = appendCrossings(us, pA[1], dC)
	sort.Float64s(us)

	for k := 0; k+1 < len(us); k++ {
		u0, u1 := us[k], us[k+1]
		if u1-u0 < 1e-12 {
			continue
		}

		// cell holding this sub-segment
		um := 0.5 * (u0 + u1)
		i := clampCell(pA[0]+um*dR, o.Nl)
		j := clampCell(pA[1]+um*dC, o.Nc)

		// quick rejection against the cell envelope
		z0 := pA[2] + u0*dZ
		z1 := pA[2] + u1*dZ
		zlo, zhi := z0, z1
		if zlo > zhi {
			zlo, zhi = zhi, zlo
		}
		if zhi < o.ZminCell[i][j]-o.TolZ || zlo > o.ZmaxCell[i][j]+o.TolZ {
			continue
		}

		// bilinear surface restricted to the segment: quadratic in u
		z11, z12 := o.Z[i][j], o.Z[i][j+1]
		z21, z22 := o.Z[i+1][j], o.Z[i+1][j+1]
		bC := z12 - z11
		bR := z21 - z11
		bRC := z11 - z12 - z21 + z22
		uc0 := pA[1] - float64(j)
		vr0 := pA[0] - float64(i)
		qa := bRC * dC * dR
		qb := bC*dC + bR*dR + bRC*(uc0*dR+vr0*dC) - dZ
		qc := z11 + bC*uc0 + bR*vr0 + bRC*uc0*vr0 - pA[2]

		u, ok := firstRoot(qa, qb, qc, u0, u1, o.TolZ)
		if !ok {
			continue
		}
		pt := [3]float64{pA[0] + u*dR, pA[1] + u*dC, pA[2] + u*dZ}
		return true, o.IndexToTer(pt)
	}
	return false, point
}

// appendCrossings appends the segment parameters at which w(u) = w0 + u*dw
// crosses integer values, for u strictly inside (0, 1)
func appendCrossings(us []float64, w0, dw float64) []float64 {
	if dw == 0 {
		return us
	}
	wa, wb := w0, w0+dw
	if wa > wb {
		wa, wb = wb, wa
	}
	for m := math.Ceil(wa); m <= math.Floor(wb); m++ {
		u := (m - w0) / dw
		if u > 0 && u < 1 {
			us = append(us, u)
		}
	}
	return us
}

// firstRoot returns the smallest root of qa·u² + qb·u + qc = 0 within
// [u0, u1] (with a small overlap at both ends for rays glancing a cell edge).
// A segment lying on a flat cell counts as touching at u0 when the constant
// residual is within tolz
func firstRoot(qa, qb, qc, u0, u1, tolz float64) (u float64, ok bool) {
	const eps = 1e-9
	if math.Abs(qa) < 1e-14 {
		if math.Abs(qb) < 1e-14 {
			if math.Abs(qc) <= tolz {
				return u0, true
			}
			return 0, false
		}
		u = -qc / qb
		if u >= u0-eps && u <= u1+eps {
			return u, true
		}
		return 0, false
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	r1 := (-qb - sq) / (2 * qa)
	r2 := (-qb + sq) / (2 * qa)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r1 >= u0-eps && r1 <= u1+eps {
		return r1, true
	}
	if r2 >= u0-eps && r2 <= u1+eps {
		return r2, true
	}
	return 0, false
}
