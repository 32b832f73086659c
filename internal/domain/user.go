package domain

import (
	"fmt"
	"slices"
	"time"
)

// Capability is a single permission an acting identity may hold.
type Capability string

const (
	CapabilityView            Capability = "view"
	CapabilityAdd             Capability = "add"
	CapabilityEdit            Capability = "edit"
	CapabilityDelegate        Capability = "delegate"
	CapabilityUploadEvidence  Capability = "uploadEvidence"
	CapabilityConfirmEvidence Capability = "confirmEvidence"
)

// IsValid checks if the capability is one of the known permissions.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityView, CapabilityAdd, CapabilityEdit,
		CapabilityDelegate, CapabilityUploadEvidence, CapabilityConfirmEvidence:
		return true
	default:
		return false
	}
}

// Role is the organizational role of a user.
type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleExecutive       Role = "Executive"
	RoleCompliance      Role = "Compliance Team"
	RoleIT              Role = "IT Team"
	RoleAuditor         Role = "Auditor"
	RoleExternalAuditor Role = "External Auditor"
	RoleUser            Role = "user"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapabilityView, CapabilityAdd, CapabilityEdit,
		CapabilityDelegate, CapabilityUploadEvidence, CapabilityConfirmEvidence,
	},
	RoleExecutive:       {CapabilityView},
	RoleCompliance:      {CapabilityView, CapabilityAdd, CapabilityEdit, CapabilityDelegate},
	RoleIT:              {CapabilityView, CapabilityEdit, CapabilityDelegate, CapabilityUploadEvidence},
	RoleAuditor:         {CapabilityView, CapabilityConfirmEvidence},
	RoleExternalAuditor: {CapabilityView, CapabilityConfirmEvidence},
	RoleUser:            {},
}

// DefaultCapabilities returns the capability set granted by a role.
// Unknown roles get no capabilities.
func (r Role) DefaultCapabilities() []Capability {
	return slices.Clone(roleCapabilities[r])
}

// User represents a person who acts on task records.
type User struct {
	ID          string
	Username    string
	Role        Role
	Token       string
	IsActive    bool
	Permissions []Capability // granted on top of the role defaults
	CreatedAt   time.Time
}

// Actor builds the request-scoped identity for this user.
func (u *User) Actor() Actor {
	caps := u.Role.DefaultCapabilities()
	for _, c := range u.Permissions {
		if !slices.Contains(caps, c) {
			caps = append(caps, c)
		}
	}
	return Actor{ID: u.ID, Role: u.Role, Capabilities: caps}
}

// Actor is the identity attached to a single request, with the capabilities
// it holds at request time.
type Actor struct {
	ID           string
	Role         Role
	Capabilities []Capability
}

// Has reports whether the actor holds a capability.
func (a Actor) Has(c Capability) bool {
	return slices.Contains(a.Capabilities, c)
}

// Require returns ErrMissingCapability naming the first capability the actor lacks.
func (a Actor) Require(caps ...Capability) error {
	for _, c := range caps {
		if !a.Has(c) {
			return fmt.Errorf("%w: user %s (%s) lacks %q", ErrMissingCapability, a.ID, a.Role, c)
		}
	}
	return nil
}
