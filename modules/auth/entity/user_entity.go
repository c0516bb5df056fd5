package entity

import (
	"gclub-api/core/entity"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// User is the identity the engine consumes. Registration, sessions and
// profile management live outside this service.
type User struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  Role   `db:"role" json:"role"`
	entity.BaseEntity
}
