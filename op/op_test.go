package op

import (
	"fmt"
	"testing"
)

func TestTerm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		actions []Action
		term    Term
	}{
		{actions: nil, term: ""},
		{actions: []Action{CreA(0), DesA(1)}, term: "+a0 -a1"},
		{actions: []Action{CreB(12), DesB(3)}, term: "+b12 -b3"},
		{actions: []Action{DesA(7)}, term: "-a7"},
		{actions: []Action{CreA(0), CreB(2), DesB(2), DesA(0)}, term: "+a0 +b2 -b2 -a0"},
	}
	for _, test := range tests {
		t.Run(string(test.term), func(t *testing.T) {
			t.Parallel()
			term := NewTerm(test.actions...)
			if term != test.term {
				t.Fatalf("%q, expected %q", term, test.term)
			}
			actions, err := term.Actions()
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if len(actions) != len(test.actions) {
				t.Fatalf("%d, expected %d", len(actions), len(test.actions))
			}
			for i, a := range actions {
				if a != test.actions[i] {
					t.Fatalf("%d %#v, expected %#v", i, a, test.actions[i])
				}
			}
		})
	}
}

func TestTermActionsError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		term Term
	}{
		{term: "a0"},
		{term: "*a0"},
		{term: "+c0"},
		{term: "+a"},
		{term: "+axyz"},
		{term: "+a-1"},
		{term: "+a0 -a"},
	}
	for _, test := range tests {
		t.Run(string(test.term), func(t *testing.T) {
			t.Parallel()
			if _, err := test.term.Actions(); err == nil {
				t.Fatalf("%q", test.term)
			}
		})
	}
}

func TestFermionOperator(t *testing.T) {
	t.Parallel()
	o := FermionOperator{}
	o.Add(NewTerm(CreA(0), DesA(1)), 0.5)
	o.Add(NewTerm(CreA(0), DesA(1)), 0.25)
	o.Add("", 1)
	if v := o[Term("+a0 -a1")]; v != 0.75 {
		t.Fatalf("%v, expected %v", v, 0.75)
	}

	expected := `(1+0i) ""
(0.75+0i) "+a0 -a1"`
	if s := o.String(); s != expected {
		t.Fatalf("%s, expected %s", s, expected)
	}
}

func TestActionString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a Action
		s string
	}{
		{a: CreA(0), s: "+a0"},
		{a: CreB(31), s: "+b31"},
		{a: DesA(2), s: "-a2"},
		{a: DesB(10), s: "-b10"},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#v", test.a), func(t *testing.T) {
			t.Parallel()
			if s := test.a.String(); s != test.s {
				t.Fatalf("%s, expected %s", s, test.s)
			}
		})
	}
}
