package policy

import (
	"testing"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"

	"github.com/google/uuid"
)

func userWithRole(role entity.Role) *entity.User {
	return &entity.User{
		Base: entity.Base{ID: uuid.New()},
		Role: role,
	}
}

func TestCanActOnUser(t *testing.T) {
	selfID := uuid.New()

	self := func(role entity.Role) (Actor, *entity.User) {
		target := userWithRole(role)
		target.ID = selfID
		return Actor{ID: selfID, Role: role}, target
	}

	tests := []struct {
		name    string
		actor   Actor
		target  *entity.User
		action  Action
		allowed bool
	}{
		{
			name:    "user edits own account",
			action:  ActionEdit,
			allowed: true,
		},
		{
			name:    "user deletes own account",
			action:  ActionDelete,
			allowed: true,
		},
		{
			name:    "user edits another user",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleUser},
			target:  userWithRole(entity.RoleUser),
			action:  ActionEdit,
			allowed: false,
		},
		{
			name:    "user deletes another user",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleUser},
			target:  userWithRole(entity.RoleUser),
			action:  ActionDelete,
			allowed: false,
		},
		{
			name:    "admin edits a user",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleUser),
			action:  ActionEdit,
			allowed: true,
		},
		{
			name:    "admin deletes a user",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleUser),
			action:  ActionDelete,
			allowed: true,
		},
		{
			name:    "admin edits another admin",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleAdmin),
			action:  ActionEdit,
			allowed: false,
		},
		{
			name:    "admin deletes another admin",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleAdmin),
			action:  ActionDelete,
			allowed: false,
		},
		{
			name:    "admin edits root",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleRoot),
			action:  ActionEdit,
			allowed: false,
		},
		{
			name:    "admin deletes root",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleAdmin},
			target:  userWithRole(entity.RoleRoot),
			action:  ActionDelete,
			allowed: false,
		},
		{
			name:    "root edits a user",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleRoot},
			target:  userWithRole(entity.RoleUser),
			action:  ActionEdit,
			allowed: true,
		},
		{
			name:    "root deletes an admin",
			actor:   Actor{ID: uuid.New(), Role: entity.RoleRoot},
			target:  userWithRole(entity.RoleAdmin),
			action:  ActionDelete,
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, target := tt.actor, tt.target
			if target == nil {
				actor, target = self(entity.RoleUser)
			}
			got := CanActOnUser(actor, target, tt.action)
			if got.Allowed != tt.allowed {
				t.Errorf("allowed = %v, want %v (reason %q)", got.Allowed, tt.allowed, got.Reason)
			}
			if !got.Allowed && got.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}

// The admin asymmetry: editing yourself is fine, deleting yourself is
// not.
func TestAdminSelfAsymmetry(t *testing.T) {
	admin := userWithRole(entity.RoleAdmin)
	actor := Actor{ID: admin.ID, Role: entity.RoleAdmin}

	if got := CanActOnUser(actor, admin, ActionEdit); !got.Allowed {
		t.Errorf("admin should be able to edit itself: %q", got.Reason)
	}
	if got := CanActOnUser(actor, admin, ActionDelete); got.Allowed {
		t.Error("admin must not be able to delete itself")
	}
}

// Root is permanent: not even root can delete a root account.
func TestRootNeverDeletable(t *testing.T) {
	root := userWithRole(entity.RoleRoot)

	for _, actor := range []Actor{
		{ID: root.ID, Role: entity.RoleRoot},
		{ID: uuid.New(), Role: entity.RoleRoot},
		{ID: uuid.New(), Role: entity.RoleAdmin},
		{ID: uuid.New(), Role: entity.RoleUser},
	} {
		if got := CanActOnUser(actor, root, ActionDelete); got.Allowed {
			t.Errorf("actor role %s deleted root", actor.Role)
		}
	}

	// Root may still edit itself.
	self := Actor{ID: root.ID, Role: entity.RoleRoot}
	if got := CanActOnUser(self, root, ActionEdit); !got.Allowed {
		t.Errorf("root should be able to edit itself: %q", got.Reason)
	}
}
