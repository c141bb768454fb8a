package ffsim

import (
	"math"
	"math/bits"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/miamico/ffsim/fci"
)

// FermiHubbard2D builds the Fermi-Hubbard model on an n[0] x n[1]
// lattice: hopping -t between nearest neighbors, on-site interaction
// u, chemical potential mu, and density-density interaction vnn on
// bonds. Periodic boundaries wrap a direction only when its extent
// exceeds 2, so that no bond is counted twice. Site (y, x) is orbital
// y*n[1]+x.
func FermiHubbard2D(n [2]int, t, u, mu, vnn float32, periodic bool) *MolecularHamiltonian {
	norb := n[0] * n[1]
	oneBody := tensor.Zeros(norb, norb)
	twoBody := tensor.Zeros(norb, norb, norb, norb)

	bonds := make([][2]int, 0, 2)
	for y := 0; y < n[0]; y++ {
		for x := 0; x < n[1]; x++ {
			bonds = bonds[:0]
			up := y - 1
			if up < 0 && periodic && n[0] > 2 {
				up = n[0] - 1
			}
			if up >= 0 {
				bonds = append(bonds, [2]int{up, x})
			}
			left := x - 1
			if left < 0 && periodic && n[1] > 2 {
				left = n[1] - 1
			}
			if left >= 0 {
				bonds = append(bonds, [2]int{y, left})
			}

			p := y*n[1] + x
			for _, b := range bonds {
				q := b[0]*n[1] + b[1]
				oneBody.SetAt([]int{p, q}, oneBody.At(p, q)-complex(t, 0))
				oneBody.SetAt([]int{q, p}, oneBody.At(q, p)-complex(t, 0))
				if vnn != 0 {
					twoBody.SetAt([]int{p, p, q, q}, twoBody.At(p, p, q, q)+complex(vnn, 0))
					twoBody.SetAt([]int{q, q, p, p}, twoBody.At(q, q, p, p)+complex(vnn, 0))
				}
			}
			if u != 0 {
				twoBody.SetAt([]int{p, p, p, p}, complex(u, 0))
			}
			if mu != 0 {
				oneBody.SetAt([]int{p, p}, complex(-mu, 0))
			}
		}
	}
	return &MolecularHamiltonian{oneBody: oneBody, twoBody: twoBody, norb: norb}
}

// FermiHubbard1D builds the Fermi-Hubbard chain on norb sites.
func FermiHubbard1D(norb int, t, u, mu, vnn float32, periodic bool) *MolecularHamiltonian {
	return FermiHubbard2D([2]int{1, norb}, t, u, mu, vnn, periodic)
}

// DoubleOccupancy returns the average number of doubly occupied sites
// per orbital, sum_p <n_{alpha,p} n_{beta,p}> / norb, for a normalized
// sector vector in alpha-major order.
func DoubleOccupancy(vec []complex128, norb int, nelec [2]int) (float64, error) {
	strsA, err := fci.Strings(norb, nelec[0])
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	strsB, err := fci.Strings(norb, nelec[1])
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	if len(vec) != len(strsA)*len(strsB) {
		return 0, errors.Errorf("%d %d %d", len(vec), len(strsA), len(strsB))
	}

	var totalProb, occ float64
	for ia, sa := range strsA {
		for ib, sb := range strsB {
			amplitude := vec[ia*len(strsB)+ib]
			probability := real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
			totalProb += probability
			occ += probability * float64(bits.OnesCount64(sa&sb))
		}
	}
	if math.Abs(totalProb-1) > 1e-3 {
		return 0, errors.Errorf("%f", totalProb)
	}
	return occ / float64(norb), nil
}
