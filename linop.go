package ffsim

import (
	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/miamico/ffsim/fci"
)

// Machine precision.
const epsilon = 0x1p-23

// LinearOperator applies a MolecularHamiltonian to vectors of a fixed
// particle-number sector without materializing the matrix. The
// one-body tensor is absorbed into the two-body tensor at build time,
// so every application costs a single contraction.
type LinearOperator struct {
	norb     int
	nelec    [2]int
	na, nb   int
	dim      int
	constant complex64
	absorbed *tensor.Dense
	links    [2]fci.LinkTable
}

// LinearOperator builds the matrix-free operator of h over the sector
// with nelec[0] spin-alpha and nelec[1] spin-beta electrons. norb must
// equal h.Norb().
func (h *MolecularHamiltonian) LinearOperator(norb int, nelec [2]int) (*LinearOperator, error) {
	if norb != h.norb {
		return nil, errors.Errorf("%d %d", norb, h.norb)
	}
	linkA, err := fci.GenLinkIndex(norb, nelec[0])
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	linkB, err := fci.GenLinkIndex(norb, nelec[1])
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	a := &LinearOperator{
		norb:     norb,
		nelec:    nelec,
		na:       len(linkA),
		nb:       len(linkB),
		constant: h.constant,
		absorbed: fci.AbsorbOneBody(h.oneBody, h.twoBody, norb, nelec, 0.5),
		links:    [2]fci.LinkTable{linkA, linkB},
	}
	a.dim = a.na * a.nb
	return a, nil
}

// Dims returns the operator's dimensions. Both equal
// C(norb, nelec[0]) * C(norb, nelec[1]).
func (a *LinearOperator) Dims() (int, int) { return a.dim, a.dim }

// Matvec applies the operator to x. Amplitudes are alpha major:
// x[ia*nb+ib] multiplies |alpha string ia>|beta string ib>.
func (a *LinearOperator) Matvec(x []complex64) ([]complex64, error) {
	if len(x) != a.dim {
		return nil, errors.Errorf("%d %d", len(x), a.dim)
	}
	vec := tensor.Zeros(a.na, a.nb)
	for i, v := range x {
		vec.SetAt([]int{i / a.nb, i % a.nb}, v)
	}
	out, err := fci.ContractTwoBody(a.absorbed, vec, a.norb, a.nelec, a.links)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	y := make([]complex64, a.dim)
	for i := range y {
		y[i] = out.At(i/a.nb, i%a.nb)
	}
	if a.constant != 0 {
		for i := range y {
			y[i] += a.constant * x[i]
		}
	}
	return y, nil
}

// Rmatvec applies the adjoint operator. Hamiltonians are Hermitian, so
// this is Matvec.
func (a *LinearOperator) Rmatvec(x []complex64) ([]complex64, error) {
	return a.Matvec(x)
}

// Dense materializes the operator as a (dim, dim) matrix.
func (a *LinearOperator) Dense() *tensor.Dense {
	d := tensor.Zeros(a.dim, a.dim)
	x := make([]complex64, a.dim)
	for j := 0; j < a.dim; j++ {
		x[j] = 1
		y, err := a.Matvec(x)
		if err != nil {
			panic(err)
		}
		x[j] = 0
		for i, v := range y {
			d.SetAt([]int{i, j}, v)
		}
	}
	return d
}

// GroundState computes the lowest eigenpair of a with an Arnoldi
// iteration over its dense form. It returns the Rayleigh quotient and
// the (dim, 1) eigenvector.
func GroundState(a *LinearOperator) (complex64, *tensor.Dense, error) {
	h := a.Dense()

	eigvals, eigvecs := tensor.Zeros(1), tensor.Zeros(1)
	var abufs [7]*tensor.Dense
	for i := range abufs {
		abufs[i] = tensor.Zeros(1)
	}
	if err := tensor.Arnoldi(eigvals, eigvecs, h, 1, abufs); err != nil {
		return 0, nil, errors.Wrap(err, "")
	}
	v := resetCopy(tensor.Zeros(1), eigvecs.Reshape(a.dim, 1))

	bufs := [2]*tensor.Dense{tensor.Zeros(1), tensor.Zeros(1)}
	hv := tensor.Product(bufs[0], h, v, [][2]int{{1, 0}})
	vhv := tensor.Product(bufs[1], v.Conj(), hv, [][2]int{{0, 0}})
	ip := tensor.Product(bufs[0], v.Conj(), v, [][2]int{{0, 0}}).At(0, 0)
	if abs(ip) < epsilon {
		return 0, nil, errors.Errorf("%f", ip)
	}
	return vhv.At(0, 0) / ip, v, nil
}

// Diagonal returns the diagonal of the sector Hamiltonian without
// building the operator. Complex tensors and complex constants are not
// supported.
func (h *MolecularHamiltonian) Diagonal(norb int, nelec [2]int) ([]float32, error) {
	if norb != h.norb {
		return nil, errors.Errorf("%d %d", norb, h.norb)
	}
	if imag(h.constant) != 0 {
		return nil, errors.Errorf("not real: %v", h.constant)
	}
	for _, t := range []*tensor.Dense{h.oneBody, h.twoBody} {
		for _, v := range t.All() {
			if imag(v) != 0 {
				return nil, errors.Errorf("not real: %v", v)
			}
		}
	}

	diag, err := fci.MakeDiagonal(h.oneBody, h.twoBody, norb, nelec)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if c := real(h.constant); c != 0 {
		for i := range diag {
			diag[i] += c
		}
	}
	return diag, nil
}
