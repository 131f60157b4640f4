package domain

// RoleName identifies one of the closed set of roles the authorization
// rules reason about. The roles table additionally carries display labels
// and fee association, but decision sites compare against these constants.
type RoleName string

const (
	RoleAdmin         RoleName = "admin"
	RoleDataCollector RoleName = "dataCollector"
	RolePublic        RoleName = "public"
	RoleSubUser       RoleName = "subUser"
)

// Role is the reference-data record backing a RoleName.
type Role struct {
	RoleID int64    `json:"roleID"`
	Name   RoleName `json:"name"`
	Label  string   `json:"label"`
}
