package models

// All lists every model managed by the schema migration, parents first.
func All() []any {
	return []any{&Tenant{}, &User{}, &RefreshToken{}}
}
