package access

const (
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

const (
	CapManageCourses = "manage_courses"
	CapUpload        = "upload"
	CapViewStats     = "view_stats"
)

// CapabilitiesFor lists what a role may do; unknown roles get nothing.
func CapabilitiesFor(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{CapManageCourses, CapUpload, CapViewStats}
	case RoleInstructor:
		return []string{CapManageCourses, CapUpload}
	default:
		return []string{}
	}
}

func Can(role, capability string) bool {
	for _, c := range CapabilitiesFor(role) {
		if c == capability {
			return true
		}
	}
	return false
}
