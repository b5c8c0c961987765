package domain

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleHost   Role = "HOST"
	RoleRenter Role = "RENTER"
)

// User mirrors what the account directory knows about a principal.
// Credential management lives outside this service.
type User struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedOn string `json:"created_on"`
}

// Principal is the authenticated caller attached to each request.
type Principal struct {
	UserID int32
	Roles  []Role
}

// HasRole is the single capability check; callers never compare role
// strings directly.
func (p Principal) HasRole(required Role) bool {
	for _, r := range p.Roles {
		if r == required {
			return true
		}
	}
	return false
}
