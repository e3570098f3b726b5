// Package policy contains the access-control decision logic of the
// directory: field redaction, mutation authorization, creation-time conflict
// and completeness checks, and the admin-minting guard. Every privilege
// check in the system goes through this package; nothing outside it compares
// role strings.
package policy

import (
	"context"

	"github.com/campushub/user-directory/internal/core/domain"
)

// IdentityState classifies how a request credential resolved.
type IdentityState int

const (
	// IdentityAbsent: no credential was offered at all.
	IdentityAbsent IdentityState = iota
	// IdentityInvalid: a credential was offered but could not be verified.
	IdentityInvalid
	// IdentityPresent: the credential resolved to a subject.
	IdentityPresent
)

// Identity is the explicit result of resolving a request credential. It is
// produced once per request and passed by value into every policy and
// service call; nothing is stashed on shared request state.
type Identity struct {
	State   IdentityState
	Subject string
}

// Anonymous is the identity of a request that offered no credential.
var Anonymous = Identity{State: IdentityAbsent}

// Caller is a fully resolved acting party: a known subject plus whether it
// currently holds the admin role.
type Caller struct {
	Subject string
	Admin   bool
}

// RoleOracle answers whether a subject currently holds a role. Lookup
// failures surface as errors and must never be treated as "no".
type RoleOracle interface {
	HasRole(ctx context.Context, subjectID string, role domain.Role) (bool, error)
}
