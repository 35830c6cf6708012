package models

type Role string

const (
	AdminRole    Role = "admin"
	ManagerRole  Role = "manager"
	CustomerRole Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case AdminRole, ManagerRole, CustomerRole:
		return true
	}
	return false
}
