// Package contact は連絡先の作成、取得、更新、削除、検索のドメインロジックを提供する。
// すべての操作は要求ユーザーのusernameで所有権を確認してから行う。
package contact

import (
	"context"
	"fmt"

	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/repository"
	"github.com/hitoshi/contactbook/internal/validation"
)

// ContactDeletedMessage は連絡先削除成功時にdataとして返す確認値。
const ContactDeletedMessage = "OK"

// Service は連絡先管理のサービス層。
type Service struct {
	contactRepo repository.ContactRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(contactRepo repository.ContactRepository) *Service {
	return &Service{contactRepo: contactRepo}
}

// Create は要求ユーザーを所有者として連絡先を作成する。
func (s *Service) Create(ctx context.Context, user *model.User, req validation.CreateContactRequest) (*model.ContactResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		FirstName: req.FirstName,
		LastName:  emptyToNil(req.LastName),
		Email:     emptyToNil(req.Email),
		Phone:     emptyToNil(req.Phone),
		Username:  user.Username,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("連絡先の作成に失敗しました: %w", err)
	}

	return model.ToContactResponse(contact), nil
}

// CheckContactExist は(id, username)で連絡先を引く所有権ゲート。
// 存在しない場合と他ユーザーの連絡先である場合はどちらもNOT_FOUNDを返す。
func (s *Service) CheckContactExist(ctx context.Context, username string, id int64) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByIDAndUsername(ctx, id, username)
	if err != nil {
		return nil, fmt.Errorf("連絡先の取得に失敗しました: %w", err)
	}
	if contact == nil {
		return nil, model.NewNotFoundError(model.MsgContactNotFound)
	}
	return contact, nil
}

// Get は所有する連絡先を返す。
func (s *Service) Get(ctx context.Context, user *model.User, id int64) (*model.ContactResponse, error) {
	contact, err := s.CheckContactExist(ctx, user.Username, id)
	if err != nil {
		return nil, err
	}
	return model.ToContactResponse(contact), nil
}

// Update は所有する連絡先を更新する。
// first_nameは常に上書きし、任意項目は省略時に現在値を保ち、空文字ならNULLにする。
func (s *Service) Update(ctx context.Context, user *model.User, req validation.UpdateContactRequest) (*model.ContactResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	current, err := s.CheckContactExist(ctx, user.Username, req.ID)
	if err != nil {
		return nil, err
	}

	updated, err := s.contactRepo.Update(ctx, &model.Contact{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  mergeOptional(current.LastName, req.LastName),
		Email:     mergeOptional(current.Email, req.Email),
		Phone:     mergeOptional(current.Phone, req.Phone),
		Username:  user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("連絡先の更新に失敗しました: %w", err)
	}
	// ゲート通過後に並行して削除された場合
	if updated == nil {
		return nil, model.NewNotFoundError(model.MsgContactNotFound)
	}

	return model.ToContactResponse(updated), nil
}

// Delete は所有する連絡先を削除し、確認値を返す。紐付く住所はCASCADE削除される。
func (s *Service) Delete(ctx context.Context, user *model.User, id int64) (string, error) {
	if _, err := s.CheckContactExist(ctx, user.Username, id); err != nil {
		return "", err
	}

	deleted, err := s.contactRepo.Delete(ctx, id, user.Username)
	if err != nil {
		return "", fmt.Errorf("連絡先の削除に失敗しました: %w", err)
	}
	if !deleted {
		return "", model.NewNotFoundError(model.MsgContactNotFound)
	}

	return ContactDeletedMessage, nil
}

// Search は条件に一致する連絡先をページ単位で返す。
// total_pageは同じ条件の件数クエリから算出する。
func (s *Service) Search(ctx context.Context, user *model.User, req validation.SearchContactRequest) (*model.Page[*model.ContactResponse], error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	filter := req.Filter()

	contacts, err := s.contactRepo.Search(ctx, user.Username, filter, req.Offset(), req.Size)
	if err != nil {
		return nil, fmt.Errorf("連絡先の検索に失敗しました: %w", err)
	}

	total, err := s.contactRepo.Count(ctx, user.Username, filter)
	if err != nil {
		return nil, fmt.Errorf("連絡先の件数取得に失敗しました: %w", err)
	}

	data := make([]*model.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		data = append(data, model.ToContactResponse(c))
	}

	return &model.Page[*model.ContactResponse]{
		Data: data,
		Paging: model.Paging{
			CurrentPage: req.Page,
			TotalPage:   model.TotalPages(total, req.Size),
			Size:        req.Size,
		},
	}, nil
}

// emptyToNil は空文字の任意項目を未指定として扱う。
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
