package weft

import "fmt"

// Branch is a conditional construct for workflow bodies. Arms are declared
// with When and the branch must be terminated with Else before its value
// is read: a branch without an Else arm reaching a call argument or a
// workflow output is a usage error, never a silent default.
//
// Conditions are evaluated at trace time; the first true arm wins.
//
// Example:
//
//	choice := weft.NewBranch("pick-model").
//	    When(budget > 100, big).
//	    Else(small)
type Branch struct {
	name    string
	arms    []branchArm
	deflt   any
	hasElse bool
}

type branchArm struct {
	cond  bool
	value any
}

// NewBranch creates a named branch construct.
func NewBranch(name string) *Branch {
	return &Branch{name: name}
}

// When adds a conditional arm. Returns the branch for method chaining.
func (b *Branch) When(cond bool, value any) *Branch {
	b.arms = append(b.arms, branchArm{cond: cond, value: value})
	return b
}

// Else sets the terminal default arm and returns the branch, which is now
// resolvable.
func (b *Branch) Else(value any) *Branch {
	b.deflt = value
	b.hasElse = true
	return b
}

// Resolve returns the value of the first true arm, or the Else value.
// Returns ErrUnresolvedBranch if Else was never declared.
func (b *Branch) Resolve() (any, error) {
	if !b.hasElse {
		return nil, fmt.Errorf("branch %s: %w", b.name, ErrUnresolvedBranch)
	}
	for _, arm := range b.arms {
		if arm.cond {
			return arm.value, nil
		}
	}
	return b.deflt, nil
}
