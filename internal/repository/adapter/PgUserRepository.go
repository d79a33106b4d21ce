package adapter

import (
	"context"
	"errors"
	"fmt"

	chat "fictionchat/internal/pkg/chat/application/domain"
	port "fictionchat/internal/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HostUserTable describes where the host application keeps its user rows.
// Table and column names come from configuration, so they are quoted as
// identifiers before being interpolated into SQL.
type HostUserTable struct {
	Table         string
	IDColumn      string
	NameColumn    string
	PictureColumn string
}

type PgUserRepository struct {
	pool *pgxpool.Pool
	host HostUserTable
}

func NewPgUserRepository(pool *pgxpool.Pool, host HostUserTable) *PgUserRepository {
	return &PgUserRepository{pool: pool, host: host}
}

// Ensure interface is satisfied
var _ port.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) ListAll(ctx context.Context) ([]chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, fullname, profile_picture
		FROM chat.app_user
		ORDER BY fullname, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []chat.User
	for rows.Next() {
		var u chat.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.ProfilePicture); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

func (r *PgUserRepository) SyncFromHost(ctx context.Context) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgUserRepository: nil pool")
	}

	query := fmt.Sprintf(
		`SELECT %s::text, %s, %s FROM %s`,
		pgx.Identifier{r.host.IDColumn}.Sanitize(),
		pgx.Identifier{r.host.NameColumn}.Sanitize(),
		pgx.Identifier{r.host.PictureColumn}.Sanitize(),
		pgx.Identifier{r.host.Table}.Sanitize(),
	)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("users: read host table: %w", err)
	}
	defer rows.Close()

	var users []chat.User
	for rows.Next() {
		var u chat.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.ProfilePicture); err != nil {
			return 0, err
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		return 0, rows.Err()
	}

	// All upserts ride one transaction so a failing row leaves the previous
	// mirror snapshot intact.
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, u := range users {
		_, err := tx.Exec(ctx, `
			INSERT INTO chat.app_user (id, fullname, profile_picture)
			VALUES ($1, $2, $3)
			ON CONFLICT (id)
			DO UPDATE SET fullname = EXCLUDED.fullname,
			              profile_picture = EXCLUDED.profile_picture
		`, u.ID, u.FullName, u.ProfilePicture)
		if err != nil {
			return 0, fmt.Errorf("users: upsert %s: %w", u.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(users), nil
}
