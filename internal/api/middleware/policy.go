package middleware

import (
	"slices"

	"github.com/phrazzld/taskify-api/internal/domain"
)

// Resource is a protected kind of object.
type Resource string

// Action is an operation on a Resource.
type Action string

const (
	ResourceProfile Resource = "profile"
	ResourceTask    Resource = "task"
	ResourceUser    Resource = "user"
)

const (
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission pairs a resource with an action.
type Permission struct {
	Resource Resource
	Action   Action
}

// Policy maps each permission to the roles granted it. A permission absent
// from the policy is granted to nobody.
type Policy map[Permission][]domain.Role

// DefaultPolicy is the access table of the API.
var DefaultPolicy = Policy{
	{ResourceProfile, ActionRead}:   {domain.RoleAdmin, domain.RoleUser},
	{ResourceProfile, ActionUpdate}: {domain.RoleAdmin, domain.RoleUser},

	{ResourceTask, ActionRead}:   {domain.RoleAdmin, domain.RoleUser},
	{ResourceTask, ActionCreate}: {domain.RoleAdmin, domain.RoleUser},
	{ResourceTask, ActionUpdate}: {domain.RoleAdmin, domain.RoleUser},
	{ResourceTask, ActionDelete}: {domain.RoleAdmin, domain.RoleUser},

	{ResourceUser, ActionList}:   {domain.RoleAdmin},
	{ResourceUser, ActionUpdate}: {domain.RoleAdmin},
	{ResourceUser, ActionDelete}: {domain.RoleAdmin},
}

// Allows reports whether role may perform action on resource.
func (p Policy) Allows(role domain.Role, resource Resource, action Action) bool {
	return slices.Contains(p[Permission{Resource: resource, Action: action}], role)
}
