package users

type MeResponse struct {
	User         UserDTO  `json:"user"`
	Capabilities []string `json:"capabilities"`
	Stats        StatsDTO `json:"stats"`
}

type UserDTO struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
}

type StatsDTO struct {
	Courses  int64 `json:"courses"`
	Modules  int64 `json:"modules"`
	Contents int64 `json:"contents"`
}
