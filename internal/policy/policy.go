// Package policy is the single access rule table for the API. Every
// authorization decision goes through Allows (collection level) or
// AllowsRecord (object level). Both are pure functions with no side
// effects; anything the table does not recognize is denied.
package policy

import (
	"github.com/google/uuid"

	"yamdb-api/internal/data/entity"
)

// Action distinguishes safe reads from mutating requests.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Resource is the kind of record a request targets.
type Resource int

const (
	ResourceCatalog Resource = iota // categories and genres
	ResourceTitle
	ResourceReview
	ResourceComment
	ResourceUsers       // admin user management
	ResourceSelfProfile // the caller's own /users/me
)

// Actor is the principal making a request. The zero value is anonymous.
type Actor struct {
	Authenticated bool
	ID            uuid.UUID
	Role          entity.UserRole
	Superuser     bool
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

// IsAdmin reports admin-level access. A superuser always counts as admin.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Superuser || a.Role == entity.RoleAdmin)
}

// IsModerator reports the moderator role. Superuser status does not make
// someone a moderator; it makes them an admin, which is strictly wider.
func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == entity.RoleModerator
}

// Allows decides collection-level access: listing, retrieving and
// creating records of a resource kind.
func Allows(action Action, resource Resource, actor Actor) bool {
	switch resource {
	case ResourceCatalog, ResourceTitle:
		if action == ActionRead {
			return true
		}
		return actor.IsAdmin()

	case ResourceReview, ResourceComment:
		if action == ActionRead {
			return true
		}
		// Creating a review or comment just requires being signed in;
		// who may touch an existing record is AllowsRecord's business.
		return actor.Authenticated

	case ResourceUsers:
		return actor.IsAdmin()

	case ResourceSelfProfile:
		return actor.Authenticated
	}

	// Unknown resource kinds are denied, whatever the actor
	return false
}

// AllowsRecord decides object-level access to a single record owned by
// authorID. Callers confirm the record exists before asking, so a deny
// here maps to forbidden, not to not-found.
func AllowsRecord(action Action, resource Resource, actor Actor, authorID uuid.UUID) bool {
	switch resource {
	case ResourceReview, ResourceComment:
		if action == ActionRead {
			return true
		}
		if !actor.Authenticated {
			return false
		}
		return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
	}

	// Resources without per-record ownership fall back to the
	// collection rule.
	return Allows(action, resource, actor)
}
