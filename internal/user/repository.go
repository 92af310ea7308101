package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gymbook/internal/api"
	"gymbook/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT user_id, name, email, role, created_at
		FROM users
		WHERE user_id = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err == sql.ErrNoRows {
		return nil, api.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) ExistsWithRole(ctx context.Context, id int64, role string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE user_id = $1 AND role = $2
		)
	`
	return db.Exists(ctx, r.db, query, id, role)
}
