// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rfm

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_mono01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mono01. monomial terms")

	a, b, c := 0.5, -0.25, 2.0
	m := make([]float64, Nterms)
	Monomes(m, a, b, c)

	// reference computed with the exponents table
	ref := make([]float64, Nterms)
	for i := 0; i < Nterms; i++ {
		t := Monos[i]
		ref[i] = float64(t[0]) * math.Pow(a, float64(t[1])) * math.Pow(b, float64(t[2])) * math.Pow(c, float64(t[3]))
	}
	chk.Vector(tst, "monomes", 1e-15, m, ref)

	// the ordering of the first terms is fixed
	chk.Vector(tst, "low order terms", 1e-15, m[:7], []float64{1, a, b, c, a * b, a * c, b * c})
	chk.Scalar(tst, "abc", 1e-15, m[10], a*b*c)
	chk.Scalar(tst, "c³", 1e-15, m[19], c*c*c)

	// at the origin only the constant term survives
	Monomes(m, 0, 0, 0)
	chk.Scalar(tst, "m[0] @ origin", 1e-17, m[0], 1.0)
	for i := 1; i < Nterms; i++ {
		chk.Scalar(tst, io.Sf("m[%d] @ origin", i), 1e-17, m[i], 0.0)
	}
}

func Test_mono02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mono02. derivative tables vs central differences")

	a, b, c := 0.3, -0.7, 1.2
	ana := make([]float64, Nterms)
	tmp := make([]float64, Nterms)

	// w.r.t. first variable
	Eval(ana, &Deriv1, a, b, c)
	for i := 0; i < Nterms; i++ {
		idx := i
		dnum := num.DerivCen(func(x float64, args ...interface{}) float64 {
			Monomes(tmp, x, b, c)
			return tmp[idx]
		}, a)
		chk.AnaNum(tst, io.Sf("dm%d/da", i), 1e-8, ana[i], dnum, chk.Verbose)
	}

	// w.r.t. second variable
	Eval(ana, &Deriv2, a, b, c)
	for i := 0; i < Nterms; i++ {
		idx := i
		dnum := num.DerivCen(func(x float64, args ...interface{}) float64 {
			Monomes(tmp, a, x, c)
			return tmp[idx]
		}, b)
		chk.AnaNum(tst, io.Sf("dm%d/db", i), 1e-8, ana[i], dnum, chk.Verbose)
	}
}

func Test_mono03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mono03. dot product")

	m := make([]float64, Nterms)
	Monomes(m, 1, 1, 1)
	one := make([]float64, Nterms)
	for i := range one {
		one[i] = 1
	}
	chk.Scalar(tst, "Σ terms @ (1,1,1)", 1e-15, Dot(one, m), 20.0)

	coef := make([]float64, Nterms)
	coef[1] = 2.5 // selects the 'a' term
	Monomes(m, -0.4, 0.8, 0.1)
	chk.Scalar(tst, "coef·m", 1e-15, Dot(coef, m), 2.5*(-0.4))
}
