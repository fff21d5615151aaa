package types

import "time"

// AdminProject is the system-admin view of a project: owner identity plus
// member and trip counts.
type AdminProject struct {
	Project
	Owner       UserSummary `json:"owner"`
	MemberCount int         `json:"memberCount"`
	TripCount   int         `json:"tripCount"`
}

// SystemStats is the administrative dashboard aggregate.
type SystemStats struct {
	UserCount    int    `json:"userCount"`
	ProjectCount int    `json:"projectCount"`
	TripCount    int    `json:"tripCount"`
	PaymentCount int    `json:"paymentCount"`
	RecentUsers  []User `json:"recentUsers"`
}

// HealthStatus reports liveness of the service and its database.
type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
