package domain

// RoleSet is the set of roles a guarded route accepts.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Permits is the guard predicate: a nil user is never permitted.
func (s RoleSet) Permits(u *User) bool {
	if u == nil {
		return false
	}
	_, ok := s[u.Role]
	return ok
}

// Guard role sets. Each covers both the camp and the donation vocabulary.
var (
	StudentRoles    = NewRoleSet(RoleStudent, RoleDonor)
	InstructorRoles = NewRoleSet(RoleInstructor, RoleFundraiser, RoleVerified)
	AdminRoles      = NewRoleSet(RoleAdmin)

	// TeacherListingRoles selects the users shown on the public teachers page.
	TeacherListingRoles = []Role{RoleInstructor, RoleVerified}
)
