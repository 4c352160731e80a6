package nes

import "fmt"

// AccessPolicy decides what happens on a bus access outside every mapped
// region.
type AccessPolicy int

const (
	// DefaultPolicy selects the policy the binary was built with: Lenient,
	// or Strict when built with -tags strict.
	DefaultPolicy AccessPolicy = iota
	// Lenient reads 0 and drops writes.
	Lenient
	// Strict fails the access with ErrOutOfBounds.
	Strict
)

func (p AccessPolicy) String() string {
	switch p {
	case DefaultPolicy:
		return fmt.Sprintf("default(%s)", buildPolicy)
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("AccessPolicy(%d)", int(p))
}

// resolve replaces DefaultPolicy with the build time policy.
func (p AccessPolicy) resolve() AccessPolicy {
	if p == DefaultPolicy {
		return buildPolicy
	}
	return p
}
