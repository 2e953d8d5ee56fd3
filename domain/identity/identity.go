/*
Package identity models the caller as forwarded by the gateway.

The gateway has already verified the token; this package only checks that
both values are present and that the role belongs to the closed set. A
Context is built once per request and passed explicitly into every
application service call.
*/
package identity

import (
	"strings"

	"propertyhub/domain/shared"
)

// Role 调用方角色
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is one of the recognized roles.
// Matching is exact: the gateway forwards upper-case values.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Context 已校验的调用方身份，不持久化
type Context struct {
	callerID string
	role     Role
}

// Validate builds a Context from the forwarded values.
// Missing values yield ErrUnauthenticated, an unknown role ErrUnauthorized.
func Validate(callerID, role string) (Context, error) {
	callerID = strings.TrimSpace(callerID)
	role = strings.TrimSpace(role)

	if callerID == "" || role == "" {
		return Context{}, shared.NewUnauthenticatedError("missing caller identity")
	}

	r := Role(role)
	if !r.IsValid() {
		return Context{}, shared.NewUnauthorizedError("invalid role: " + role)
	}

	return Context{callerID: callerID, role: r}, nil
}

// RequireRole fails with ErrForbidden when the caller's role differs from expected.
// A zero Context fails with ErrUnauthenticated.
func (c Context) RequireRole(expected Role) error {
	if c.IsZero() {
		return shared.NewUnauthenticatedError("missing caller identity")
	}
	if c.role != expected {
		return shared.NewForbiddenError("identity", "operation requires role "+string(expected))
	}
	return nil
}

func (c Context) CallerID() string { return c.callerID }
func (c Context) Role() Role       { return c.role }
func (c Context) IsAdmin() bool    { return c.role == RoleAdmin }

// IsZero reports whether c was never validated.
func (c Context) IsZero() bool { return c.callerID == "" }
