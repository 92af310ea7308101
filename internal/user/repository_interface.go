package user

import "context"

type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsWithRole(ctx context.Context, id int64, role string) (bool, error)
}
