// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rfm implements the monomial basis of rational function models (RFM).
// A cubic rational polynomial has 20 terms; each term is encoded as one row
// {c, dx, dy, dz} of a table, meaning c * a^dx * b^dy * c^dz for normalized
// inputs (a, b, c). The ordering follows the RPC/NITF standard.
package rfm

// Nterms is the number of monomials of a cubic rational polynomial
const Nterms = 20

// Tbl holds one monomial per row: {coefficient, exponent of a, exponent of b, exponent of c}
type Tbl [Nterms][4]int

// Monos is the monomial table:
//  [1, a, b, c, ab, ac, bc, a², b², c², abc, a³, ab², ac², a²b, b³, bc², a²c, b²c, c³]
var Monos = Tbl{
	{1, 0, 0, 0},
	{1, 1, 0, 0},
	{1, 0, 1, 0},
	{1, 0, 0, 1},
	{1, 1, 1, 0},
	{1, 1, 0, 1},
	{1, 0, 1, 1},
	{1, 2, 0, 0},
	{1, 0, 2, 0},
	{1, 0, 0, 2},
	{1, 1, 1, 1},
	{1, 3, 0, 0},
	{1, 1, 2, 0},
	{1, 1, 0, 2},
	{1, 2, 1, 0},
	{1, 0, 3, 0},
	{1, 0, 1, 2},
	{1, 2, 0, 1},
	{1, 0, 2, 1},
	{1, 0, 0, 3},
}

// Deriv1 is the monomial table differentiated w.r.t. the first variable
var Deriv1 = Tbl{
	{0, 0, 0, 0},
	{1, 0, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
	{1, 0, 1, 0},
	{1, 0, 0, 1},
	{0, 0, 1, 1},
	{2, 1, 0, 0},
	{0, 0, 2, 0},
	{0, 0, 0, 2},
	{1, 0, 1, 1},
	{3, 2, 0, 0},
	{1, 0, 2, 0},
	{1, 0, 0, 2},
	{2, 1, 1, 0},
	{0, 0, 3, 0},
	{0, 0, 1, 2},
	{2, 1, 0, 1},
	{0, 0, 2, 1},
	{0, 0, 0, 3},
}

// Deriv2 is the monomial table differentiated w.r.t. the second variable
var Deriv2 = Tbl{
	{0, 0, 0, 0},
	{0, 1, 0, 0},
	{1, 0, 0, 0},
	{0, 0, 0, 1},
	{1, 1, 0, 0},
	{0, 1, 0, 1},
	{1, 0, 0, 1},
	{0, 2, 0, 0},
	{2, 0, 1, 0},
	{0, 0, 0, 2},
	{1, 1, 0, 1},
	{0, 3, 0, 0},
	{2, 1, 1, 0},
	{0, 1, 0, 2},
	{1, 2, 0, 0},
	{3, 0, 2, 0},
	{1, 0, 0, 2},
	{0, 2, 0, 1},
	{2, 0, 1, 1},
	{0, 0, 0, 3},
}

// Monomes fills res (len == Nterms) with the monomial terms at (a, b, c)
func Monomes(res []float64, a, b, c float64) {
	Eval(res, &Monos, a, b, c)
}

// Eval fills res (len == Nterms) with the terms of tbl at (a, b, c).
// Use with Deriv1 or Deriv2 to obtain partial derivatives of the basis.
func Eval(res []float64, tbl *Tbl, a, b, c float64) {
	for i := 0; i < Nterms; i++ {
		t := &tbl[i]
		res[i] = float64(t[0]) * powi(a, t[1]) * powi(b, t[2]) * powi(c, t[3])
	}
}

// Dot returns the inner product between a length-20 coefficient set and a monomial vector
func Dot(coef, m []float64) (res float64) {
	for i := 0; i < Nterms; i++ {
		res += coef[i] * m[i]
	}
	return
}

// powi computes x^n for the small non-negative exponents of the tables
func powi(x float64, n int) float64 {
	switch n {
	case 0:
		return 1.0
	case 1:
		return x
	case 2:
		return x * x
	}
	return x * x * x
}
