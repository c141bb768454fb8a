package ffsim

import (
	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/miamico/ffsim/op"
)

// FermionOperator expands the Hamiltonian into a sum of ladder
// operator terms. Every (p, q) yields one term per spin species with
// coefficient one[p,q], and every (p, q, r, s) yields the four
// products a†_{sigma,p} a†_{tau,r} a_{tau,s} a_{sigma,q} with
// coefficient two[p,q,r,s]/2. The constant rides on the empty term.
func (h *MolecularHamiltonian) FermionOperator() op.FermionOperator {
	fop := op.FermionOperator{"": h.constant}

	cre := [2]func(int) op.Action{op.CreA, op.CreB}
	des := [2]func(int) op.Action{op.DesA, op.DesB}
	for p := 0; p < h.norb; p++ {
		for q := 0; q < h.norb; q++ {
			coeff := h.oneBody.At(p, q)
			for sg := range cre {
				fop[op.NewTerm(cre[sg](p), des[sg](q))] = coeff
			}
		}
	}
	for p := 0; p < h.norb; p++ {
		for q := 0; q < h.norb; q++ {
			for r := 0; r < h.norb; r++ {
				for s := 0; s < h.norb; s++ {
					coeff := 0.5 * h.twoBody.At(p, q, r, s)
					for sg := range cre {
						for tu := range cre {
							fop[op.NewTerm(cre[sg](p), cre[tu](r), des[tu](s), des[sg](q))] = coeff
						}
					}
				}
			}
		}
	}
	return fop
}

// FromFermionOperator reassembles a record from ladder operator terms
// following the conventions of FermionOperator. The number of orbitals
// is one plus the largest orbital index. One-body coefficients
// accumulate at half weight, once per spin species. For each two-body
// orbital quadruple the first term seen fills all eight symmetry slots
// and later terms of the quadruple are skipped. Terms that fit neither
// the constant, the one-body nor the two-body shape are errors.
func FromFermionOperator(fop op.FermionOperator) (*MolecularHamiltonian, error) {
	norb := 0
	for t := range fop {
		actions, err := t.Actions()
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		for _, a := range actions {
			if a.Orb+1 > norb {
				norb = a.Orb + 1
			}
		}
	}
	if norb == 0 {
		return nil, errors.Errorf("no orbitals")
	}

	oneBody := tensor.Zeros(norb, norb)
	twoBody := tensor.Zeros(norb, norb, norb, norb)
	var constant complex64
	seen := map[[4]int]bool{}
	for t, coeff := range fop {
		actions, err := t.Actions()
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		switch len(actions) {
		case 0:
			if imag(coeff) != 0 {
				return nil, errors.Errorf("constant not real: %v", coeff)
			}
			constant = coeff
		case 2:
			p, q := actions[0].Orb, actions[1].Orb
			switch t {
			case op.NewTerm(op.CreA(p), op.DesA(q)),
				op.NewTerm(op.CreB(p), op.DesB(q)):
			default:
				return nil, errors.Errorf("not a one-body term: %q", t)
			}
			oneBody.SetAt([]int{p, q}, oneBody.At(p, q)+0.5*coeff)
		case 4:
			p, r, s, q := actions[0].Orb, actions[1].Orb, actions[2].Orb, actions[3].Orb
			switch t {
			case op.NewTerm(op.CreA(p), op.CreA(r), op.DesA(s), op.DesA(q)),
				op.NewTerm(op.CreA(p), op.CreB(r), op.DesB(s), op.DesA(q)),
				op.NewTerm(op.CreB(p), op.CreA(r), op.DesA(s), op.DesB(q)),
				op.NewTerm(op.CreB(p), op.CreB(r), op.DesB(s), op.DesB(q)):
			default:
				return nil, errors.Errorf("not a two-body term: %q", t)
			}
			key := [4]int{p, q, r, s}
			if seen[key] {
				continue
			}
			seen[key] = true
			v := 2 * coeff
			for _, d := range [][4]int{
				{p, q, r, s}, {q, p, r, s}, {p, q, s, r}, {q, p, s, r},
				{r, s, p, q}, {s, r, p, q}, {r, s, q, p}, {s, r, q, p},
			} {
				twoBody.SetAt(d[:], v)
			}
		default:
			return nil, errors.Errorf("term %q has %d actions", t, len(actions))
		}
	}
	return &MolecularHamiltonian{oneBody: oneBody, twoBody: twoBody, constant: constant, norb: norb}, nil
}
