// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/contactbook/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// CountByUsername は指定usernameのユーザー数を返す（0または1）。
	CountByUsername(ctx context.Context, username string) (int, error)

	// FindByUsername は指定usernameのユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByToken は指定トークンを保持するユーザーを取得する。見つからない場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.User, error)

	// Create はユーザーを作成する。usernameが重複する場合はCONFLICTのAPIErrorを返す。
	Create(ctx context.Context, user *model.User) error

	// Update はname、password、tokenを上書きし、更新後の行を返す。
	// 該当行がない場合はnilを返す。
	Update(ctx context.Context, user *model.User) (*model.User, error)
}

// ContactRepository は連絡先データの永続化インターフェース。
// すべての操作は所有ユーザーのusernameで絞り込む。
type ContactRepository interface {
	// Create は連絡先を作成し、採番されたIDをcontact.IDに設定する。
	Create(ctx context.Context, contact *model.Contact) error

	// FindByIDAndUsername は所有ユーザーの連絡先を取得する。見つからない場合はnilを返す。
	FindByIDAndUsername(ctx context.Context, id int64, username string) (*model.Contact, error)

	// Update は連絡先を更新し、更新後の行を返す。該当行がない場合はnilを返す。
	Update(ctx context.Context, contact *model.Contact) (*model.Contact, error)

	// Delete は連絡先を削除する。削除された行がある場合はtrueを返す。
	// 紐付く住所はCASCADE削除される。
	Delete(ctx context.Context, id int64, username string) (bool, error)

	// Search はフィルタに一致する連絡先をid昇順でoffsetからlimit件返す。
	Search(ctx context.Context, username string, filter model.ContactFilter, offset, limit int) ([]*model.Contact, error)

	// Count はSearchと同一条件に一致する連絡先の総数を返す。
	Count(ctx context.Context, username string, filter model.ContactFilter) (int, error)
}

// AddressRepository は住所データの永続化インターフェース。
// すべての操作は親の連絡先IDで絞り込む。
type AddressRepository interface {
	// Create は住所を作成し、採番されたIDをaddress.IDに設定する。
	Create(ctx context.Context, address *model.Address) error

	// FindByIDAndContactID は連絡先に紐付く住所を取得する。見つからない場合はnilを返す。
	FindByIDAndContactID(ctx context.Context, id, contactID int64) (*model.Address, error)

	// ListByContactID は連絡先に紐付くすべての住所をid昇順で返す。
	ListByContactID(ctx context.Context, contactID int64) ([]*model.Address, error)

	// Update は住所を更新し、更新後の行を返す。該当行がない場合はnilを返す。
	Update(ctx context.Context, address *model.Address) (*model.Address, error)

	// Delete は住所を削除する。削除された行がある場合はtrueを返す。
	Delete(ctx context.Context, id, contactID int64) (bool, error)
}
