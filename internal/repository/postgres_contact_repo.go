package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/contactbook/internal/model"
)

// likeEscaper はLIKEパターンのメタ文字をリテラルとして扱うためにエスケープする。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const contactColumns = `id, first_name, last_name, email, phone, username`

// PostgresContactRepo はPostgreSQLを使用した連絡先リポジトリ。
type PostgresContactRepo struct {
	db *sql.DB
}

// NewPostgresContactRepo はPostgresContactRepoを生成する。
func NewPostgresContactRepo(db *sql.DB) *PostgresContactRepo {
	return &PostgresContactRepo{db: db}
}

// Create は連絡先を作成し、採番されたIDを設定する。
func (r *PostgresContactRepo) Create(ctx context.Context, contact *model.Contact) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, username)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		contact.FirstName, nullString(contact.LastName), nullString(contact.Email),
		nullString(contact.Phone), contact.Username,
	).Scan(&contact.ID)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// FindByIDAndUsername は所有ユーザーの連絡先を取得する。見つからない場合はnilを返す。
func (r *PostgresContactRepo) FindByIDAndUsername(ctx context.Context, id int64, username string) (*model.Contact, error) {
	contact, err := scanContact(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	return contact, nil
}

// Update は連絡先を更新し、更新後の行を返す。該当行がない場合はnilを返す。
func (r *PostgresContactRepo) Update(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	updated, err := scanContact(r.db.QueryRowContext(ctx,
		`UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6
		 WHERE id = $1 AND username = $2
		 RETURNING `+contactColumns,
		contact.ID, contact.Username, contact.FirstName,
		nullString(contact.LastName), nullString(contact.Email), nullString(contact.Phone),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return updated, nil
}

// Delete は連絡先を削除する。削除された行がある場合はtrueを返す。
func (r *PostgresContactRepo) Delete(ctx context.Context, id int64, username string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Search はフィルタに一致する連絡先をid昇順でoffsetからlimit件返す。
func (r *PostgresContactRepo) Search(
	ctx context.Context,
	username string,
	filter model.ContactFilter,
	offset, limit int,
) ([]*model.Contact, error) {
	where, args := contactSearchWhere(username, filter)
	argIndex := len(args) + 1

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + where +
		fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*model.Contact, 0, limit)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

// Count はSearchと同一条件に一致する連絡先の総数を返す。
func (r *PostgresContactRepo) Count(ctx context.Context, username string, filter model.ContactFilter) (int, error) {
	where, args := contactSearchWhere(username, filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// contactSearchWhere は検索と件数取得で共有するWHERE句と引数を構築する。
// nameはfirst_nameとlast_nameのOR、各フィルタ同士はANDで結合する。
func contactSearchWhere(username string, filter model.ContactFilter) (string, []any) {
	clauses := []string{"username = $1"}
	args := []any{username}
	argIndex := 2

	if filter.Name != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(first_name LIKE '%%' || $%d || '%%' OR last_name LIKE '%%' || $%d || '%%')",
			argIndex, argIndex,
		))
		args = append(args, likeEscaper.Replace(filter.Name))
		argIndex++
	}
	if filter.Email != "" {
		clauses = append(clauses, fmt.Sprintf("email LIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, likeEscaper.Replace(filter.Email))
		argIndex++
	}
	if filter.Phone != "" {
		clauses = append(clauses, fmt.Sprintf("phone LIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, likeEscaper.Replace(filter.Phone))
	}

	return strings.Join(clauses, " AND "), args
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*model.Contact, error) {
	contact := &model.Contact{}
	var lastName, email, phone sql.NullString
	if err := row.Scan(&contact.ID, &contact.FirstName, &lastName, &email, &phone, &contact.Username); err != nil {
		return nil, err
	}
	contact.LastName = nullStringPtr(lastName)
	contact.Email = nullStringPtr(email)
	contact.Phone = nullStringPtr(phone)
	return contact, nil
}

// nullStringPtr はNULL許容値を*stringに変換する。NULLはnilになる。
func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// compile-time interface check
var _ ContactRepository = (*PostgresContactRepo)(nil)
