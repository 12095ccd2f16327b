package user

// Actor is the authenticated caller. Handlers build it from token claims and
// pass it explicitly to every service call.
type Actor struct {
	UserID     string
	CompanyID  string
	EmployeeID *string
	Role       Role
}

// IsManager reports whether the actor may act on other employees' records.
func (a Actor) IsManager() bool {
	return a.Role == RoleManager || a.Role == RoleOwner
}

// IsEmployee reports whether the actor is linked to an employee record.
func (a Actor) IsEmployee() bool {
	return a.EmployeeID != nil && *a.EmployeeID != ""
}

// Owns reports whether employeeID is the actor's own employee record.
func (a Actor) Owns(employeeID string) bool {
	return a.IsEmployee() && *a.EmployeeID == employeeID
}

// Validate checks the fields every company-scoped operation needs.
func (a Actor) Validate() error {
	if a.UserID == "" {
		return ErrActorRequired
	}
	if a.CompanyID == "" {
		return ErrCompanyIDRequired
	}
	return nil
}

// RequireManager returns ErrManagerAccessRequired unless the actor is a manager or owner.
func (a Actor) RequireManager() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsManager() {
		return ErrManagerAccessRequired
	}
	return nil
}

// RequireEmployee returns ErrEmployeeLinkRequired unless the actor has an employee record.
func (a Actor) RequireEmployee() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsEmployee() {
		return ErrEmployeeLinkRequired
	}
	return nil
}

// RequirePermission returns ErrInsufficientPermissions unless the actor's role grants p.
func (a Actor) RequirePermission(p Permission) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !HasPermission(a.Role, p) {
		return ErrInsufficientPermissions
	}
	return nil
}
