package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/contactbook/internal/model"
)

// uniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolation = "23505"

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// CountByUsername は指定usernameのユーザー数を返す。
func (r *PostgresUserRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = $1`,
		username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by username: %w", err)
	}
	return count, nil
}

// FindByUsername は指定usernameのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := r.findOne(ctx,
		`SELECT username, password, name, token FROM users WHERE username = $1`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByToken は指定トークンを保持するユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := r.findOne(ctx,
		`SELECT username, password, name, token FROM users WHERE token = $1`,
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by token: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.Username, &user.Password, &user.Name, &token)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if token.Valid {
		user.Token = &token.String
	}
	return user, nil
}

// Create はユーザーを作成する。
// 登録前の重複チェックをすり抜けた同時登録は一意制約違反としてCONFLICTに変換する。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, name, token) VALUES ($1, $2, $3, $4)`,
		user.Username, user.Password, user.Name, nullString(user.Token),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewConflictError(model.MsgUsernameAlreadyExists)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update はname、password、tokenを上書きし、更新後の行を返す。
func (r *PostgresUserRepo) Update(ctx context.Context, user *model.User) (*model.User, error) {
	updated := &model.User{}
	var token sql.NullString
	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $2, password = $3, token = $4
		 WHERE username = $1
		 RETURNING username, password, name, token`,
		user.Username, user.Name, user.Password, nullString(user.Token),
	).Scan(&updated.Username, &updated.Password, &updated.Name, &token)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if token.Valid {
		updated.Token = &token.String
	}
	return updated, nil
}

// isUniqueViolation はエラーがPostgreSQLの一意制約違反かを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// nullString は*stringをSQLのNULL許容値に変換する。
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
