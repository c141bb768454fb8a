// Package random generates random unitaries, symmetric tensors and
// Hamiltonians for tests and benchmarks.
package random

import (
	"math/rand/v2"

	"github.com/fumin/tensor"

	"github.com/miamico/ffsim"
)

// Unitary returns a random (n, n) unitary matrix, the Q factor of a
// random complex matrix.
func Unitary(n int) *tensor.Dense {
	q := tensor.Zeros(1)
	bufs := [2]*tensor.Dense{tensor.Zeros(1), tensor.Zeros(1)}
	tensor.QR(q, complexTensor(n, n), bufs)
	return q
}

// Hermitian returns a random (n, n) Hermitian matrix.
func Hermitian(n int) *tensor.Dense {
	a := complexTensor(n, n)
	h := tensor.Zeros(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h.SetAt([]int{i, j}, 0.5*(a.At(i, j)+conj(a.At(j, i))))
		}
	}
	return h
}

// RealSymmetric returns a random (n, n) real symmetric matrix.
func RealSymmetric(n int) *tensor.Dense {
	a := realTensor(n, n)
	h := tensor.Zeros(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h.SetAt([]int{i, j}, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return h
}

// TwoBodyTensor returns a random real two-body tensor with the
// eightfold index symmetry, built as a sum of products of random real
// symmetric matrices: t[p,q,r,s] = sum_m L_m[p,q] L_m[r,s].
func TwoBodyTensor(n int) *tensor.Dense {
	t := tensor.Zeros(n, n, n, n)
	rank := n * (n + 1) / 2
	for m := 0; m < rank; m++ {
		l := RealSymmetric(n)
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				for r := 0; r < n; r++ {
					for s := 0; s < n; s++ {
						v := t.At(p, q, r, s) + l.At(p, q)*l.At(r, s)
						t.SetAt([]int{p, q, r, s}, v)
					}
				}
			}
		}
	}
	return t
}

// MolecularHamiltonian returns a random record with a real symmetric
// one-body tensor, an eightfold symmetric real two-body tensor, and a
// real constant.
func MolecularHamiltonian(norb int) *ffsim.MolecularHamiltonian {
	return ffsim.MustNew(RealSymmetric(norb), TwoBodyTensor(norb), complex(rand.Float32()*2-1, 0))
}

func complexTensor(shape ...int) *tensor.Dense {
	t := tensor.Zeros(shape...)
	for ijk := range t.All() {
		v := complex(rand.Float32()*2-1, rand.Float32()*2-1)
		t.SetAt(ijk, v)
	}
	return t
}

func realTensor(shape ...int) *tensor.Dense {
	t := tensor.Zeros(shape...)
	for ijk := range t.All() {
		t.SetAt(ijk, complex(rand.Float32()*2-1, 0))
	}
	return t
}

func conj(x complex64) complex64 {
	return complex(real(x), -imag(x))
}
