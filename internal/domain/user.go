package domain

// Role represents a user's access level.
type Role string

// Roles, from most to least privileged.
const (
	RoleAdmin       Role = "Admin"
	RolePrimeUser   Role = "PrimeUser"
	RoleRegularUser Role = "RegularUser"
	RoleViewer      Role = "Viewer"
)

// AllRoles lists every role in rank order.
var AllRoles = []Role{RoleAdmin, RolePrimeUser, RoleRegularUser, RoleViewer}

// Rank returns the role's position in the hierarchy. Higher means more
// privileged. Unknown roles rank 0 and never pass a permission check.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 4
	case RolePrimeUser:
		return 3
	case RoleRegularUser:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// HasPermission reports whether the role meets the least privileged of the
// required roles. An empty requirement set denies access.
func (r Role) HasPermission(required ...Role) bool {
	if len(required) == 0 || !r.IsValid() {
		return false
	}
	min := required[0].Rank()
	for _, req := range required[1:] {
		if req.Rank() < min {
			min = req.Rank()
		}
	}
	return r.Rank() >= min
}

// User represents a dashboard user. Users are seeded out-of-band and are
// immutable here; no update or delete operation exists.
type User struct {
	UserName       string `json:"userName"`
	UserPhone      string `json:"userPhone"`
	UserEmail      string `json:"userEmail"`
	UserRole       Role   `json:"userRole"`
	CreatedAt      string `json:"createdAt"`
	LastLoggedInAt string `json:"lastLoggedInAt"`
}
