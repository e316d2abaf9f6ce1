package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Office - full access
	RoleForeman Role = "foreman" // Runs crews, reviews and approves time
	RoleWorker  Role = "worker"  // Field worker
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	UsesClockIn  bool
	BurdenRate   float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an office admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsForeman checks if user is a foreman or admin
func (u *User) IsForeman() bool {
	return u.Role == RoleForeman || u.Role == RoleAdmin
}

// CanApproveTime checks if user can approve weekly timesheets
func (u *User) CanApproveTime() bool {
	return u.IsForeman()
}
