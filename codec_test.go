package ffsim

import (
	"testing"

	"github.com/fumin/tensor"

	"github.com/miamico/ffsim/op"
)

func TestFermionOperatorTerms(t *testing.T) {
	t.Parallel()
	h := MustNew(tensor.T2([][]complex64{{1.5}}), tensor.T4([][][][]complex64{{{{4}}}}), 0.25)
	fop := h.FermionOperator()
	expected := op.FermionOperator{
		"":                0.25,
		"+a0 -a0":         1.5,
		"+b0 -b0":         1.5,
		"+a0 +a0 -a0 -a0": 2,
		"+a0 +b0 -b0 -a0": 2,
		"+b0 +a0 -a0 -b0": 2,
		"+b0 +b0 -b0 -b0": 2,
	}
	if len(fop) != len(expected) {
		t.Fatalf("%d, expected %d", len(fop), len(expected))
	}
	for term, coeff := range expected {
		if v := fop[term]; v != coeff {
			t.Fatalf("%q %v, expected %v", term, v, coeff)
		}
	}
}

func TestFermionOperatorTwoOrbitals(t *testing.T) {
	t.Parallel()
	one := tensor.T2([][]complex64{
		{0.5, 0.25 + 0.125i},
		{0.25 - 0.125i, -0.25},
	})
	h := MustNew(one, twoBodyFixture(), 0)
	fop := h.FermionOperator()

	// 1 constant, 2*4 one-body and 4*16 two-body terms.
	if len(fop) != 73 {
		t.Fatalf("%d, expected %d", len(fop), 73)
	}
	// The constant term is always present.
	if _, ok := fop[op.Term("")]; !ok {
		t.Fatalf("%s", fop)
	}
	tests := []struct {
		term  op.Term
		coeff complex64
	}{
		{term: "", coeff: 0},
		{term: "+a0 -a1", coeff: 0.25 + 0.125i},
		{term: "+b1 -b0", coeff: 0.25 - 0.125i},
		// 0.5 * two[0,0,1,1].
		{term: "+a0 +b1 -b1 -a0", coeff: -0.03125},
		// 0.5 * two[1,1,0,0].
		{term: "+b1 +a0 -a0 -b1", coeff: -0.03125},
		// 0.5 * two[1,0,0,1].
		{term: "+a1 +a0 -a1 -a0", coeff: 0.03125},
	}
	for _, test := range tests {
		if v := fop[test.term]; v != test.coeff {
			t.Fatalf("%q %v, expected %v", test.term, v, test.coeff)
		}
	}
}

func TestFermionOperatorRoundTrip(t *testing.T) {
	t.Parallel()
	one := tensor.T2([][]complex64{
		{0.5, 0.25 + 0.125i},
		{0.25 - 0.125i, -0.25},
	})
	h := MustNew(one, twoBodyFixture(), 0.25)

	got, err := FromFermionOperator(h.FermionOperator())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c := got.ApproxEqual(h, 0, 0); c != Equal {
		t.Fatalf("%s", c)
	}
}

func TestFromFermionOperatorHalving(t *testing.T) {
	t.Parallel()
	// A lone spin-alpha term contributes at half weight.
	fop := op.FermionOperator{"+a0 -a0": 3}
	h, err := FromFermionOperator(fop)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if h.Norb() != 1 {
		t.Fatalf("%d, expected %d", h.Norb(), 1)
	}
	if v := h.OneBody().At(0, 0); v != 1.5 {
		t.Fatalf("%v, expected %v", v, 1.5)
	}
	if v := h.Constant(); v != 0 {
		t.Fatalf("%v", v)
	}
}

func TestFromFermionOperatorSlots(t *testing.T) {
	t.Parallel()
	// A single two-body term doubles onto the eight symmetry slots of
	// its orbital quadruple, and the largest index sets the orbital
	// count.
	fop := op.FermionOperator{"+a0 +a2 -a3 -a1": 0.25}
	h, err := FromFermionOperator(fop)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if h.Norb() != 4 {
		t.Fatalf("%d, expected %d", h.Norb(), 4)
	}
	slots := map[[4]int]bool{
		{0, 1, 2, 3}: true, {1, 0, 2, 3}: true, {0, 1, 3, 2}: true, {1, 0, 3, 2}: true,
		{2, 3, 0, 1}: true, {3, 2, 0, 1}: true, {2, 3, 1, 0}: true, {3, 2, 1, 0}: true,
	}
	for ijk, v := range h.TwoBody().All() {
		var expected complex64
		if slots[[4]int(ijk)] {
			expected = 0.5
		}
		if v != expected {
			t.Fatalf("%v %v, expected %v", ijk, v, expected)
		}
	}
	for ijk, v := range h.OneBody().All() {
		if v != 0 {
			t.Fatalf("%v %v", ijk, v)
		}
	}
}

func TestFromFermionOperatorError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fop op.FermionOperator
	}{
		// No orbitals.
		{fop: op.FermionOperator{}},
		{fop: op.FermionOperator{"": 1}},
		// A complex constant.
		{fop: op.FermionOperator{"": 0.5i, "+a0 -a0": 1}},
		// Neither a constant, one-body nor two-body shape.
		{fop: op.FermionOperator{"+a0 +a1 -a1": 1}},
		{fop: op.FermionOperator{"+a0 +a1": 1}},
		{fop: op.FermionOperator{"-a0 +a1": 1}},
		{fop: op.FermionOperator{"+a0 -b1": 1}},
		{fop: op.FermionOperator{"+a0 +a1 -b1 -b0": 1}},
		{fop: op.FermionOperator{"+a0 -a1 -a1 -a0": 1}},
		{fop: op.FermionOperator{"junk": 1}},
	}
	for _, test := range tests {
		if _, err := FromFermionOperator(test.fop); err == nil {
			t.Fatalf("%s", test.fop)
		}
	}
}
