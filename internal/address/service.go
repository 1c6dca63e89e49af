// Package address は連絡先に紐付く住所のドメインロジックを提供する。
package address

import (
	"context"
	"fmt"

	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/repository"
	"github.com/hitoshi/contactbook/internal/validation"
)

// AddressDeletedMessage は住所削除成功時にdataとして返す確認値。
const AddressDeletedMessage = "OK SUKSES DI DELETE"

// ContactChecker は連絡先の所有権ゲート。
type ContactChecker interface {
	CheckContactExist(ctx context.Context, username string, id int64) (*model.Contact, error)
}

// Service は住所管理のサービス層。
type Service struct {
	addressRepo repository.AddressRepository
	contacts    ContactChecker
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(addressRepo repository.AddressRepository, contacts ContactChecker) *Service {
	return &Service{
		addressRepo: addressRepo,
		contacts:    contacts,
	}
}

// Create は所有する連絡先に住所を追加する。
func (s *Service) Create(ctx context.Context, user *model.User, req validation.CreateAddressRequest) (*model.AddressResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.contacts.CheckContactExist(ctx, user.Username, req.ContactID); err != nil {
		return nil, err
	}

	address := &model.Address{
		ContactID:  req.ContactID,
		Street:     emptyToNil(req.Street),
		City:       emptyToNil(req.City),
		Province:   emptyToNil(req.Province),
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("住所の作成に失敗しました: %w", err)
	}

	return model.ToAddressResponse(address), nil
}

// Get は所有する連絡先に紐付く住所を返す。
func (s *Service) Get(ctx context.Context, user *model.User, req validation.GetAddressRequest) (*model.AddressResponse, error) {
	address, err := s.checkAddressExist(ctx, user, req)
	if err != nil {
		return nil, err
	}
	return model.ToAddressResponse(address), nil
}

// Update は住所を更新する。countryとpostal_codeは空にできない。
// 任意項目は省略時に現在値を保ち、空文字ならNULLにする。
func (s *Service) Update(ctx context.Context, user *model.User, req validation.UpdateAddressRequest) (*model.AddressResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	current, err := s.checkAddressExist(ctx, user, validation.GetAddressRequest{ID: req.ID, ContactID: req.ContactID})
	if err != nil {
		return nil, err
	}

	updated, err := s.addressRepo.Update(ctx, &model.Address{
		ID:         req.ID,
		ContactID:  req.ContactID,
		Street:     mergeOptional(current.Street, req.Street),
		City:       mergeOptional(current.City, req.City),
		Province:   mergeOptional(current.Province, req.Province),
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return nil, fmt.Errorf("住所の更新に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewNotFoundError(model.MsgAddressNotFound)
	}

	return model.ToAddressResponse(updated), nil
}

// Remove は住所を削除し、確認値を返す。
func (s *Service) Remove(ctx context.Context, user *model.User, req validation.GetAddressRequest) (string, error) {
	if _, err := s.checkAddressExist(ctx, user, req); err != nil {
		return "", err
	}

	deleted, err := s.addressRepo.Delete(ctx, req.ID, req.ContactID)
	if err != nil {
		return "", fmt.Errorf("住所の削除に失敗しました: %w", err)
	}
	if !deleted {
		return "", model.NewNotFoundError(model.MsgAddressNotFound)
	}

	return AddressDeletedMessage, nil
}

// List は所有する連絡先のすべての住所を返す。
// 連絡先が存在しない場合は空の一覧ではなくNOT_FOUNDになる。
func (s *Service) List(ctx context.Context, user *model.User, contactID int64) ([]*model.AddressResponse, error) {
	if _, err := s.contacts.CheckContactExist(ctx, user.Username, contactID); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.ListByContactID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("住所一覧の取得に失敗しました: %w", err)
	}

	data := make([]*model.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		data = append(data, model.ToAddressResponse(a))
	}
	return data, nil
}

// checkAddressExist は連絡先の所有権を確認したうえで(id, contact_id)で住所を引く。
func (s *Service) checkAddressExist(ctx context.Context, user *model.User, req validation.GetAddressRequest) (*model.Address, error) {
	if _, err := s.contacts.CheckContactExist(ctx, user.Username, req.ContactID); err != nil {
		return nil, err
	}

	address, err := s.addressRepo.FindByIDAndContactID(ctx, req.ID, req.ContactID)
	if err != nil {
		return nil, fmt.Errorf("住所の取得に失敗しました: %w", err)
	}
	if address == nil {
		return nil, model.NewNotFoundError(model.MsgAddressNotFound)
	}
	return address, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// mergeOptional は任意項目の更新値を決める。nilは現在値を保ち、空文字はNULLにする。
func mergeOptional(current, requested *string) *string {
	if requested == nil {
		return current
	}
	return emptyToNil(requested)
}
