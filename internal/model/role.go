package model

type Role string

const (
	RoleRespondent Role = "respondent"
	RoleAuthor     Role = "author"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRespondent, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}
