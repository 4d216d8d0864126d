package domain

const (
	RoleAdmin     = "admin"
	RoleDoctor    = "medico"
	RoleSecretary = "secretaria"
	RolePatient   = "paciente"
)

// ValidRole reports whether r is one of the roles a token may carry.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleSecretary, RolePatient:
		return true
	}
	return false
}

// User models an authenticated actor of either service.
type User struct {
	ID           int64  `json:"id_usuario"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"rol"`
}
