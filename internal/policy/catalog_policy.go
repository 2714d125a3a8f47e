package policy

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
)

// CanManageCatalog decides whether actor may create, edit or delete
// categories and products. The role alone decides; catalog entities
// have no per-record owner.
func CanManageCatalog(actor Actor) Decision {
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleRoot:
		return Allow()
	}
	return Deny("Only admins may manage the catalog.")
}
