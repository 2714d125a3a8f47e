package policy

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
)

// CanActOnReview decides whether actor may edit or delete a review.
// Authorship grants both. Elevated roles may delete any review but may
// not edit someone else's.
func CanActOnReview(actor Actor, review *entity.Review, action Action) Decision {
	if actor.ID == review.CreatedBy {
		return Allow()
	}

	switch actor.Role {
	case entity.RoleAdmin, entity.RoleRoot:
		if action == ActionDelete {
			return Allow()
		}
		return Deny("Reviews can only be edited by their author.")
	}

	return Deny("You may only modify your own reviews.")
}
