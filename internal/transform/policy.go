package transform

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// Policy selects which assignment values a transform touches and how.
type Policy string

const (
	PolicyAll        Policy = "all"
	PolicyMarkedOnly Policy = "marked-only"
	PolicyRotate     Policy = "rotate"
	PolicyReveal     Policy = "reveal"
)

// Policies lists every known policy.
var Policies = []Policy{PolicyAll, PolicyMarkedOnly, PolicyRotate, PolicyReveal}

// ParsePolicy accepts a policy name, case-insensitively. An empty name means
// PolicyAll.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PolicyAll, nil
	}
	for _, p := range Policies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownPolicy, name)
}

func (p Policy) String() string {
	return string(p)
}

// Seals reports whether the policy produces sealed values.
func (p Policy) Seals() bool {
	return p == PolicyAll || p == PolicyMarkedOnly || p == PolicyRotate
}
