package entity

import "fmt"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Capability is one permission a role may carry.
type Capability uint16

const (
	CapSubmitFeedback Capability = 1 << iota
	CapEnroll
	CapViewOwnHistory
	CapViewAggregates
	CapExport
	CapManageCourses
	CapViewAllCourses
	CapManageUsers
)

var roleCapabilities = map[Role]Capability{
	RoleStudent: CapSubmitFeedback | CapEnroll | CapViewOwnHistory,
	RoleTeacher: CapViewAggregates | CapExport | CapManageCourses,
	RoleAdmin:   CapViewAggregates | CapExport | CapManageCourses | CapViewAllCourses | CapManageUsers,
}

// Roles lists every role in the order shown to users.
var Roles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[r]&c == c
}

func (r Role) String() string {
	return string(r)
}
