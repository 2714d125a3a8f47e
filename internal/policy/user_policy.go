package policy

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
)

// CanActOnUser decides whether actor may edit or delete the target user
// account. The rules are deliberately asymmetric for admins: an admin
// may edit their own account but may never delete it. A root account is
// never deletable, not even by itself.
func CanActOnUser(actor Actor, target *entity.User, action Action) Decision {
	switch actor.Role {
	case entity.RoleUser:
		if actor.ID == target.ID {
			return Allow()
		}
		return Deny("You may only modify your own account.")

	case entity.RoleAdmin:
		switch target.Role {
		case entity.RoleRoot:
			return Deny("Admins cannot modify the root account.")
		case entity.RoleAdmin:
			if action == ActionDelete {
				return Deny("Admins cannot delete themselves or another admin.")
			}
			if actor.ID == target.ID {
				return Allow()
			}
			return Deny("Admins cannot edit another admin.")
		case entity.RoleUser:
			return Allow()
		}
		return Deny("Unknown target role.")

	case entity.RoleRoot:
		if target.Role == entity.RoleRoot && action == ActionDelete {
			return Deny("The root account cannot be deleted.")
		}
		return Allow()
	}

	return Deny("Unknown actor role.")
}
