// Package fci enumerates determinant string bases of fixed
// particle-number Fock sectors and applies second-quantized
// Hamiltonians to vectors expanded in them.
//
// The algorithms follow the string-based formulation of direct
// configuration interaction in
// Peter J. Knowles and Nicholas C. Handy,
// "A new determinant-based full configuration interaction method",
// Chemical Physics Letters 111, 315 (1984).
package fci

import (
	"math/bits"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// Dim returns the number of determinants with nelec[0] spin-alpha and
// nelec[1] spin-beta electrons in norb spatial orbitals.
// Electron counts outside [0, norb] give 0.
func Dim(norb int, nelec [2]int) int {
	d := 1
	for _, n := range nelec {
		if n < 0 || n > norb {
			return 0
		}
		d *= combin.Binomial(norb, n)
	}
	return d
}

// occupations lists the occupied orbitals of every nocc-electron
// string in norb orbitals. The slice order defines the string
// addresses used throughout this package.
func occupations(norb, nocc int) ([][]int, error) {
	if norb < 0 || nocc < 0 || nocc > norb {
		return nil, errors.Errorf("%d %d", norb, nocc)
	}
	return combin.Combinations(norb, nocc), nil
}

// Strings returns the occupation bitmasks of all nocc-electron
// strings in norb orbitals, in address order.
func Strings(norb, nocc int) ([]uint64, error) {
	if norb > 64 {
		return nil, errors.Errorf("%d", norb)
	}
	occs, err := occupations(norb, nocc)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	strs := make([]uint64, 0, len(occs))
	for _, occ := range occs {
		var s uint64
		for _, o := range occ {
			s |= 1 << o
		}
		strs = append(strs, s)
	}
	return strs, nil
}

// LinkEntry records one single excitation that stays inside a sector,
// a†_Cre a_Des |source> = Sign |Target>.
type LinkEntry struct {
	Cre    int
	Des    int
	Target int
	Sign   int
}

// LinkTable lists, per source string address, every excitation out of
// that string, including the Cre==Des number operators.
type LinkTable [][]LinkEntry

// GenLinkIndex builds the excitation linkage table of the
// nocc-electron strings in norb orbitals.
func GenLinkIndex(norb, nocc int) (LinkTable, error) {
	strs, err := Strings(norb, nocc)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	addr := make(map[uint64]int, len(strs))
	for i, s := range strs {
		addr[s] = i
	}

	tab := make(LinkTable, len(strs))
	for i, str := range strs {
		entries := make([]LinkEntry, 0, nocc*(norb-nocc+1))
		for des := 0; des < norb; des++ {
			if str&(1<<des) == 0 {
				continue
			}
			for cre := 0; cre < norb; cre++ {
				if cre != des && str&(1<<cre) != 0 {
					continue
				}
				target := str&^(1<<des) | 1<<cre
				entries = append(entries, LinkEntry{
					Cre:    cre,
					Des:    des,
					Target: addr[target],
					Sign:   excSign(str, cre, des),
				})
			}
		}
		tab[i] = entries
	}
	return tab, nil
}

// excSign is the parity of the number of orbitals occupied strictly
// between cre and des in the source string.
func excSign(str uint64, cre, des int) int {
	if cre == des {
		return 1
	}
	lo, hi := cre, des
	if lo > hi {
		lo, hi = hi, lo
	}
	between := str & (1<<hi - 1) &^ (1<<(lo+1) - 1)
	if bits.OnesCount64(between)%2 == 1 {
		return -1
	}
	return 1
}
