package ffsim

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/fumin/tensor"
	"gonum.org/v1/gonum/mat"
)

// ValVec is an eigenpair.
type ValVec struct {
	Val complex128
	Vec []complex128
}

// Eigen computes all eigenpairs of a real square matrix, sorted by
// eigenvalue real part ascending. It panics if a is not square or not
// real.
func Eigen(a *tensor.Dense) []ValVec {
	s := a.Shape()
	if len(s) != 2 || s[0] != s[1] {
		panic(fmt.Sprintf("%#v", s))
	}
	gnm := mat.NewDense(s[0], s[1], nil)
	gnm.Zero()
	for ijk, v := range a.All() {
		if imag(v) != 0 {
			panic("not real")
		}
		gnm.Set(ijk[0], ijk[1], float64(real(v)))
	}

	var eig mat.Eigen
	ok := eig.Factorize(gnm, mat.EigenRight)
	if !ok {
		panic("eig.Factorize failed")
	}
	vals := eig.Values(nil)
	vecs := mat.NewCDense(s[0], s[1], nil)
	eig.VectorsTo(vecs)

	vecsR, _ := vecs.Caps()
	vvs := make([]ValVec, 0, len(vals))
	for i, v := range vals {
		vec := make([]complex128, 0, vecsR)
		for j := 0; j < vecsR; j++ {
			vec = append(vec, vecs.At(j, i))
		}
		vvs = append(vvs, ValVec{Val: v, Vec: vec})
	}
	slices.SortFunc(vvs, func(a, b ValVec) int { return cmp.Compare(real(a.Val), real(b.Val)) })

	return vvs
}
