package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/contactbook/internal/model"
)

const addressColumns = `id, contact_id, street, city, province, country, postal_code`

// PostgresAddressRepo はPostgreSQLを使用した住所リポジトリ。
type PostgresAddressRepo struct {
	db *sql.DB
}

// NewPostgresAddressRepo はPostgresAddressRepoを生成する。
func NewPostgresAddressRepo(db *sql.DB) *PostgresAddressRepo {
	return &PostgresAddressRepo{db: db}
}

// Create は住所を作成し、採番されたIDを設定する。
func (r *PostgresAddressRepo) Create(ctx context.Context, address *model.Address) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		address.ContactID, nullString(address.Street), nullString(address.City),
		nullString(address.Province), address.Country, address.PostalCode,
	).Scan(&address.ID)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

// FindByIDAndContactID は連絡先に紐付く住所を取得する。見つからない場合はnilを返す。
func (r *PostgresAddressRepo) FindByIDAndContactID(ctx context.Context, id, contactID int64) (*model.Address, error) {
	address, err := scanAddress(r.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1 AND contact_id = $2`,
		id, contactID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return address, nil
}

// ListByContactID は連絡先に紐付くすべての住所をid昇順で返す。
func (r *PostgresAddressRepo) ListByContactID(ctx context.Context, contactID int64) ([]*model.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE contact_id = $1 ORDER BY id ASC`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*model.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate addresses: %w", err)
	}

	return addresses, nil
}

// Update は住所を更新し、更新後の行を返す。該当行がない場合はnilを返す。
func (r *PostgresAddressRepo) Update(ctx context.Context, address *model.Address) (*model.Address, error) {
	updated, err := scanAddress(r.db.QueryRowContext(ctx,
		`UPDATE addresses SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		 WHERE id = $1 AND contact_id = $2
		 RETURNING `+addressColumns,
		address.ID, address.ContactID, nullString(address.Street), nullString(address.City),
		nullString(address.Province), address.Country, address.PostalCode,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return updated, nil
}

// Delete は住所を削除する。削除された行がある場合はtrueを返す。
func (r *PostgresAddressRepo) Delete(ctx context.Context, id, contactID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND contact_id = $2`,
		id, contactID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete address: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func scanAddress(row rowScanner) (*model.Address, error) {
	address := &model.Address{}
	var street, city, province sql.NullString
	if err := row.Scan(
		&address.ID, &address.ContactID, &street, &city, &province,
		&address.Country, &address.PostalCode,
	); err != nil {
		return nil, err
	}
	address.Street = nullStringPtr(street)
	address.City = nullStringPtr(city)
	address.Province = nullStringPtr(province)
	return address, nil
}

// compile-time interface check
var _ AddressRepository = (*PostgresAddressRepo)(nil)
