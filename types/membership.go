package types

import "time"

// ProjectMember is the (project, user, role) membership row. A user holds at
// most one membership per project; exactly one owner row exists per project.
type ProjectMember struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectMemberDetail is the membership joined with the member's identity, as
// returned by member listings.
type ProjectMemberDetail struct {
	ID   string      `json:"id"`
	Role Role        `json:"role"`
	User UserProfile `json:"user"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  Role   `json:"role" binding:"required"`
}

type UpdateMemberRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}
