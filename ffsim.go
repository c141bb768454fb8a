// Package ffsim implements second-quantized molecular electronic
// Hamiltonians: orbital rotations, matrix-free application to full
// configuration interaction vectors, and conversion to and from sums
// of fermionic ladder operators.
//
// References:
//   - Molecular Electronic-Structure Theory, Trygve Helgaker, Poul Jorgensen and Jeppe Olsen
package ffsim

import (
	"math/cmplx"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// MolecularHamiltonian is the Hamiltonian
//
//	H = sum_{sigma, pq} h_pq a†_{sigma,p} a_{sigma,q}
//	  + 1/2 sum_{sigma tau, pqrs} h_pqrs a†_{sigma,p} a†_{tau,r} a_{tau,s} a_{sigma,q}
//	  + constant
//
// where h_pq is the one-body tensor, h_pqrs the two-body tensor, and
// sigma, tau range over the two spin species. Records are immutable
// once constructed; transforms return fresh records.
type MolecularHamiltonian struct {
	oneBody  *tensor.Dense
	twoBody  *tensor.Dense
	constant complex64
	norb     int
}

// New constructs a record from a (norb, norb) one-body tensor and a
// (norb, norb, norb, norb) two-body tensor. The tensors are copied.
func New(oneBody, twoBody *tensor.Dense, constant complex64) (*MolecularHamiltonian, error) {
	s1 := oneBody.Shape()
	if len(s1) != 2 || s1[0] != s1[1] || s1[0] < 1 {
		return nil, errors.Errorf("%v", s1)
	}
	norb := s1[0]
	s2 := twoBody.Shape()
	if len(s2) != 4 {
		return nil, errors.Errorf("%v", s2)
	}
	for _, d := range s2 {
		if d != norb {
			return nil, errors.Errorf("%v %d", s2, norb)
		}
	}
	h := &MolecularHamiltonian{
		oneBody:  resetCopy(tensor.Zeros(1), oneBody),
		twoBody:  resetCopy(tensor.Zeros(1), twoBody),
		constant: constant,
		norb:     norb,
	}
	return h, nil
}

// MustNew is like New but panics on error.
func MustNew(oneBody, twoBody *tensor.Dense, constant complex64) *MolecularHamiltonian {
	h, err := New(oneBody, twoBody, constant)
	if err != nil {
		panic(err)
	}
	return h
}

// Norb returns the number of spatial orbitals.
func (h *MolecularHamiltonian) Norb() int { return h.norb }

// Constant returns the scalar offset.
func (h *MolecularHamiltonian) Constant() complex64 { return h.constant }

// OneBody returns a copy of the one-body tensor.
func (h *MolecularHamiltonian) OneBody() *tensor.Dense {
	return resetCopy(tensor.Zeros(1), h.oneBody)
}

// TwoBody returns a copy of the two-body tensor.
func (h *MolecularHamiltonian) TwoBody() *tensor.Dense {
	return resetCopy(tensor.Zeros(1), h.twoBody)
}

// Rotated returns the Hamiltonian in the orbital basis rotated by the
// (norb, norb) matrix u:
//
//	one'[A,B]     = sum_{ab}   one[a,b]    u[A,a] conj(u[B,b])
//	two'[A,B,C,D] = sum_{abcd} two[a,b,c,d] u[A,a] conj(u[B,b]) u[C,c] conj(u[D,d])
//
// The constant is unchanged. For unitary u this is the operator
// U H U†.
func (h *MolecularHamiltonian) Rotated(u *tensor.Dense) (*MolecularHamiltonian, error) {
	if s := u.Shape(); len(s) != 2 || s[0] != h.norb || s[1] != h.norb {
		return nil, errors.Errorf("%v %d", u.Shape(), h.norb)
	}
	bufs := [2]*tensor.Dense{tensor.Zeros(1), tensor.Zeros(1)}

	// Contract u onto each axis in turn; every product prepends the
	// rotated axis, so the result comes out axis-reversed.
	t := tensor.Product(bufs[0], u, h.oneBody, [][2]int{{1, 0}})
	t = tensor.Product(bufs[1], u.Conj(), t, [][2]int{{1, 1}})
	one := resetCopy(tensor.Zeros(1), t.Transpose(1, 0))

	t = tensor.Product(bufs[0], u, h.twoBody, [][2]int{{1, 0}})
	t = tensor.Product(bufs[1], u.Conj(), t, [][2]int{{1, 1}})
	t = tensor.Product(bufs[0], u, t, [][2]int{{1, 2}})
	t = tensor.Product(bufs[1], u.Conj(), t, [][2]int{{1, 3}})
	two := resetCopy(tensor.Zeros(1), t.Transpose(3, 2, 1, 0))

	return &MolecularHamiltonian{oneBody: one, twoBody: two, constant: h.constant, norb: h.norb}, nil
}

// Comparison is the result of an approximate equality test.
type Comparison int

const (
	// Incomparable means the compared value is not a
	// *MolecularHamiltonian.
	Incomparable Comparison = iota
	NotEqual
	Equal
)

func (c Comparison) String() string {
	switch c {
	case NotEqual:
		return "not equal"
	case Equal:
		return "equal"
	}
	return "incomparable"
}

// ApproxEqual compares h elementwise against other within the
// tolerance |x-y| <= atol + rtol*|y|.
func (h *MolecularHamiltonian) ApproxEqual(other any, rtol, atol float32) Comparison {
	o, ok := other.(*MolecularHamiltonian)
	if !ok {
		return Incomparable
	}
	if h.norb != o.norb {
		return NotEqual
	}
	for ijk, v := range h.oneBody.All() {
		if !approxClose(v, o.oneBody.At(ijk...), rtol, atol) {
			return NotEqual
		}
	}
	for ijk, v := range h.twoBody.All() {
		if !approxClose(v, o.twoBody.At(ijk...), rtol, atol) {
			return NotEqual
		}
	}
	if !approxClose(h.constant, o.constant, rtol, atol) {
		return NotEqual
	}
	return Equal
}

func approxClose(x, y complex64, rtol, atol float32) bool {
	return abs(x-y) <= atol+rtol*abs(y)
}

func resetCopy(dst, src *tensor.Dense) *tensor.Dense {
	shape := src.Shape()
	zeroDigit := make([]int, len(shape))
	dst.Reset(shape...).Set(zeroDigit, src)
	return dst
}

func abs(x complex64) float32 {
	return float32(cmplx.Abs(complex128(x)))
}
