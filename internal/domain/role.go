package domain

import "strings"

// Role is a capability tier assigned to a user. Roles are additive.
type Role string

const (
	RoleAuthor    Role = "AUTHOR"
	RoleEditor    Role = "EDITOR"
	RolePublisher Role = "PUBLISHER"
	RoleAdmin     Role = "ADMIN"
)

// AllRoles lists the assignable roles
var AllRoles = []Role{RoleAuthor, RoleEditor, RolePublisher, RoleAdmin}

// Role sets required by each tier
var (
	AuthorRoles    = []Role{RoleAuthor, RoleEditor, RolePublisher, RoleAdmin}
	EditorRoles    = []Role{RoleEditor, RolePublisher, RoleAdmin}
	PublisherRoles = []Role{RolePublisher, RoleAdmin}
	AdminRoles     = []Role{RoleAdmin}
)

// ParseRole converts user input into a Role
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Actor is a resolved identity acting on the workflow
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Roles []Role `json:"roles"`
}

// ActorID returns a pointer suitable for nullable *_by_user_id columns
func (a *Actor) ActorID() *string {
	if a == nil || a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}

// HasRole reports whether the actor holds role r
func (a *Actor) HasRole(r Role) bool {
	if a == nil {
		return false
	}
	for _, have := range a.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Authorize reports whether actorRoles and required share at least one role
func Authorize(actorRoles, required []Role) bool {
	for _, have := range actorRoles {
		for _, need := range required {
			if have == need {
				return true
			}
		}
	}
	return false
}

// AuthorizeActor applies Authorize to an actor. A missing actor is never authorized.
func AuthorizeActor(a *Actor, required []Role) bool {
	if a == nil {
		return false
	}
	return Authorize(a.Roles, required)
}
