package random

import (
	"fmt"
	"math/cmplx"
	"testing"

	"github.com/fumin/tensor"
)

func TestUnitary(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d", n), func(t *testing.T) {
			t.Parallel()
			u := Unitary(n)
			shape := u.Shape()
			if !(len(shape) == 2 && shape[0] == n && shape[1] == n) {
				t.Fatalf("%v", shape)
			}
			utu := tensor.Product(tensor.Zeros(1), u.Conj(), u, [][2]int{{0, 0}})
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					var expected complex64
					if i == j {
						expected = 1
					}
					if cmplx.Abs(complex128(utu.At(i, j)-expected)) > 1e-5 {
						t.Fatalf("%d %d %v", i, j, utu.At(i, j))
					}
				}
			}
		})
	}
}

func TestHermitian(t *testing.T) {
	t.Parallel()
	h := Hermitian(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if h.At(i, j) != conj(h.At(j, i)) {
				t.Fatalf("%d %d %v %v", i, j, h.At(i, j), h.At(j, i))
			}
		}
	}
}

func TestRealSymmetric(t *testing.T) {
	t.Parallel()
	h := RealSymmetric(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if imag(h.At(i, j)) != 0 {
				t.Fatalf("%d %d %v", i, j, h.At(i, j))
			}
			if h.At(i, j) != h.At(j, i) {
				t.Fatalf("%d %d %v %v", i, j, h.At(i, j), h.At(j, i))
			}
		}
	}
}

func TestTwoBodyTensor(t *testing.T) {
	t.Parallel()
	const n = 3
	tb := TwoBodyTensor(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					v := tb.At(p, q, r, s)
					if imag(v) != 0 {
						t.Fatalf("%d %d %d %d %v", p, q, r, s, v)
					}
					for _, ijkl := range [][4]int{
						{q, p, r, s}, {p, q, s, r}, {q, p, s, r},
						{r, s, p, q}, {s, r, p, q}, {r, s, q, p}, {s, r, q, p},
					} {
						if w := tb.At(ijkl[0], ijkl[1], ijkl[2], ijkl[3]); w != v {
							t.Fatalf("%v %v %v %v", []int{p, q, r, s}, ijkl, v, w)
						}
					}
				}
			}
		}
	}
}

func TestMolecularHamiltonian(t *testing.T) {
	t.Parallel()
	h := MolecularHamiltonian(3)
	if h.Norb() != 3 {
		t.Fatalf("%d", h.Norb())
	}
	if imag(h.Constant()) != 0 {
		t.Fatalf("%v", h.Constant())
	}
	one := h.OneBody()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if one.At(i, j) != one.At(j, i) {
				t.Fatalf("%d %d %v %v", i, j, one.At(i, j), one.At(j, i))
			}
		}
	}
	two := h.TwoBody()
	if two.At(0, 1, 2, 2) != two.At(2, 2, 1, 0) {
		t.Fatalf("%v %v", two.At(0, 1, 2, 2), two.At(2, 2, 1, 0))
	}
}
