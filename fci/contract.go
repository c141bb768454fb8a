package fci

import (
	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// AbsorbOneBody folds a one-body tensor into a copy of the two-body
// tensor, scaled by fac, so that a single two-body contraction applies
// both. The one-body part rides on the diagonal number operators and
// is divided by the electron count that multiplies it back.
func AbsorbOneBody(oneBody, twoBody *tensor.Dense, norb int, nelec [2]int, fac complex64) *tensor.Dense {
	h2e := tensor.Zeros(norb, norb, norb, norb)
	h2e.Set([]int{0, 0, 0, 0}, twoBody)

	// The guard keeps the empty sector finite, where the division
	// result multiplies nothing anyway.
	n := complex(float32(nelec[0]+nelec[1])+1e-30, 0)
	f1e := make([][]complex64, norb)
	for j := range f1e {
		f1e[j] = make([]complex64, norb)
		for k := 0; k < norb; k++ {
			v := oneBody.At(j, k)
			for i := 0; i < norb; i++ {
				v -= 0.5 * twoBody.At(j, i, i, k)
			}
			f1e[j][k] = v / n
		}
	}
	for k := 0; k < norb; k++ {
		for p := 0; p < norb; p++ {
			for q := 0; q < norb; q++ {
				h2e.SetAt([]int{k, k, p, q}, h2e.At(k, k, p, q)+f1e[p][q])
				h2e.SetAt([]int{p, q, k, k}, h2e.At(p, q, k, k)+f1e[p][q])
			}
		}
	}
	return h2e.Mul(fac)
}

// ContractTwoBody applies the absorbed two-body tensor h2e to a sector
// vector. vec is the (alpha, beta) string amplitude matrix, and links
// holds the alpha and beta linkage tables of the sector.
func ContractTwoBody(h2e, vec *tensor.Dense, norb int, nelec [2]int, links [2]LinkTable) (*tensor.Dense, error) {
	na, nb := len(links[0]), len(links[1])
	if d := Dim(norb, nelec); d != na*nb {
		return nil, errors.Errorf("%d %d %d", d, na, nb)
	}
	if s := vec.Shape(); len(s) != 2 || s[0] != na || s[1] != nb {
		return nil, errors.Errorf("%v %d %d", vec.Shape(), na, nb)
	}

	t1 := tensor.Zeros(norb, norb, na, nb)
	for str0, tab := range links[0] {
		for _, e := range tab {
			sign := complex(float32(e.Sign), 0)
			for jb := 0; jb < nb; jb++ {
				v := t1.At(e.Cre, e.Des, e.Target, jb) + sign*vec.At(str0, jb)
				t1.SetAt([]int{e.Cre, e.Des, e.Target, jb}, v)
			}
		}
	}
	for str0, tab := range links[1] {
		for _, e := range tab {
			sign := complex(float32(e.Sign), 0)
			for ja := 0; ja < na; ja++ {
				v := t1.At(e.Cre, e.Des, ja, e.Target) + sign*vec.At(ja, str0)
				t1.SetAt([]int{e.Cre, e.Des, ja, e.Target}, v)
			}
		}
	}

	g := h2e.Reshape(norb*norb, norb*norb)
	t2 := tensor.Product(tensor.Zeros(1), g, t1.Reshape(norb*norb, na*nb), [][2]int{{1, 0}})
	t2 = t2.Reshape(norb, norb, na, nb)

	out := tensor.Zeros(na, nb)
	for str0, tab := range links[0] {
		for _, e := range tab {
			sign := complex(float32(e.Sign), 0)
			for jb := 0; jb < nb; jb++ {
				v := out.At(e.Target, jb) + sign*t2.At(e.Cre, e.Des, str0, jb)
				out.SetAt([]int{e.Target, jb}, v)
			}
		}
	}
	for str0, tab := range links[1] {
		for _, e := range tab {
			sign := complex(float32(e.Sign), 0)
			for ja := 0; ja < na; ja++ {
				v := out.At(ja, e.Target) + sign*t2.At(e.Cre, e.Des, ja, str0)
				out.SetAt([]int{ja, e.Target}, v)
			}
		}
	}
	return out, nil
}

// MakeDiagonal returns the Slater-Condon diagonal of the sector
// Hamiltonian defined by real one-body and two-body tensors, in
// alpha-major address order.
func MakeDiagonal(oneBody, twoBody *tensor.Dense, norb int, nelec [2]int) ([]float32, error) {
	aocc, err := occupations(norb, nelec[0])
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	bocc, err := occupations(norb, nelec[1])
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	diag := make([]float32, 0, len(aocc)*len(bocc))
	for _, oa := range aocc {
		for _, ob := range bocc {
			occs := [2][]int{oa, ob}
			var e1, e2 float64
			for _, occ := range occs {
				for _, i := range occ {
					e1 += float64(real(oneBody.At(i, i)))
				}
			}
			// Coulomb over all four spin pairs, exchange over the
			// two same-spin pairs.
			for _, occI := range occs {
				for _, occJ := range occs {
					for _, i := range occI {
						for _, j := range occJ {
							e2 += float64(real(twoBody.At(i, i, j, j)))
						}
					}
				}
			}
			for _, occ := range occs {
				for _, i := range occ {
					for _, j := range occ {
						e2 -= float64(real(twoBody.At(i, j, j, i)))
					}
				}
			}
			diag = append(diag, float32(e1+0.5*e2))
		}
	}
	return diag, nil
}
