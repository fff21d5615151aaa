package types

import "time"

// Project is the top-level collection-management unit. OwnerID mirrors the
// owner membership row, which is created in the same transaction.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectWithRole pairs a project with the requesting user's role in it, for
// project listings.
type ProjectWithRole struct {
	Project
	Role Role `json:"role"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// ProjectUpdate carries the fields of a project PATCH; nil fields are left
// unchanged.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
