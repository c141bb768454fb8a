// Package op represents sums of products of fermionic ladder operators.
//
// A product of creation and annihilation actions is a Term, and an
// operator is a map from terms to complex coefficients. Terms use a
// compact text encoding so they can key maps and survive round trips
// through files and logs unchanged.
package op

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Spin labels the two spin species.
type Spin uint8

const (
	Alpha Spin = iota
	Beta
)

func (s Spin) String() string {
	if s == Alpha {
		return "a"
	}
	return "b"
}

// Action is a single ladder operator acting on a spin orbital.
type Action struct {
	Create bool
	Spin   Spin
	Orb    int
}

// CreA returns a spin-alpha creation action.
func CreA(orb int) Action { return Action{Create: true, Spin: Alpha, Orb: orb} }

// CreB returns a spin-beta creation action.
func CreB(orb int) Action { return Action{Create: true, Spin: Beta, Orb: orb} }

// DesA returns a spin-alpha annihilation action.
func DesA(orb int) Action { return Action{Create: false, Spin: Alpha, Orb: orb} }

// DesB returns a spin-beta annihilation action.
func DesB(orb int) Action { return Action{Create: false, Spin: Beta, Orb: orb} }

func (a Action) String() string {
	sign := "-"
	if a.Create {
		sign = "+"
	}
	return sign + a.Spin.String() + strconv.Itoa(a.Orb)
}

// Term is an ordered product of actions, encoded one token per action
// in application order: "+" creates, "-" annihilates, "a"/"b" is the
// spin, and the rest is the decimal orbital index. Tokens are joined
// by single spaces, for example "+a0 +b2 -b2 -a0". The empty Term is
// the identity.
type Term string

// NewTerm encodes actions in the given order.
func NewTerm(actions ...Action) Term {
	tokens := make([]string, 0, len(actions))
	for _, a := range actions {
		tokens = append(tokens, a.String())
	}
	return Term(strings.Join(tokens, " "))
}

// Actions decodes the term back into its action sequence.
func (t Term) Actions() ([]Action, error) {
	if t == "" {
		return nil, nil
	}
	tokens := strings.Fields(string(t))
	actions := make([]Action, 0, len(tokens))
	for _, tok := range tokens {
		a, err := parseAction(tok)
		if err != nil {
			return nil, errors.Wrap(err, string(t))
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func parseAction(tok string) (Action, error) {
	if len(tok) < 3 {
		return Action{}, errors.Errorf("%q", tok)
	}
	var a Action
	switch tok[0] {
	case '+':
		a.Create = true
	case '-':
		a.Create = false
	default:
		return Action{}, errors.Errorf("%q", tok)
	}
	switch tok[1] {
	case 'a':
		a.Spin = Alpha
	case 'b':
		a.Spin = Beta
	default:
		return Action{}, errors.Errorf("%q", tok)
	}
	orb, err := strconv.Atoi(tok[2:])
	if err != nil {
		return Action{}, errors.Wrap(err, tok)
	}
	if orb < 0 {
		return Action{}, errors.Errorf("%q", tok)
	}
	a.Orb = orb
	return a, nil
}

// FermionOperator is a linear combination of terms.
type FermionOperator map[Term]complex64

// Add accumulates coeff onto the term.
func (o FermionOperator) Add(t Term, coeff complex64) {
	o[t] += coeff
}

func (o FermionOperator) String() string {
	terms := make([]Term, 0, len(o))
	for t := range o {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	lines := make([]string, 0, len(terms))
	for _, t := range terms {
		lines = append(lines, fmt.Sprintf("%v %q", o[t], t))
	}
	return strings.Join(lines, "\n")
}
