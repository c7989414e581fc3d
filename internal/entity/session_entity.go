package entity

import "time"

type TurnRole string

const (
	TurnRoleUser  TurnRole = "user"
	TurnRoleTutor TurnRole = "tutor"
)

// Turn is one transcript message. Immutable once appended.
type Turn struct {
	Role      TurnRole
	Text      string
	CreatedAt time.Time
}
