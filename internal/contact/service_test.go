package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/validation"
)

// --- モック ---

type mockContactRepo struct {
	createFn func(ctx context.Context, contact *model.Contact) error
	findFn   func(ctx context.Context, id int64, username string) (*model.Contact, error)
	updateFn func(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	deleteFn func(ctx context.Context, id int64, username string) (bool, error)
	searchFn func(ctx context.Context, username string, filter model.ContactFilter, offset, limit int) ([]*model.Contact, error)
	countFn  func(ctx context.Context, username string, filter model.ContactFilter) (int, error)
}

func (m *mockContactRepo) Create(ctx context.Context, contact *model.Contact) error {
	if m.createFn != nil {
		return m.createFn(ctx, contact)
	}
	contact.ID = 1
	return nil
}
func (m *mockContactRepo) FindByIDAndUsername(ctx context.Context, id int64, username string) (*model.Contact, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id, username)
	}
	return nil, nil
}
func (m *mockContactRepo) Update(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, contact)
	}
	c := *contact
	return &c, nil
}
func (m *mockContactRepo) Delete(ctx context.Context, id int64, username string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, username)
	}
	return true, nil
}
func (m *mockContactRepo) Search(ctx context.Context, username string, filter model.ContactFilter, offset, limit int) ([]*model.Contact, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, username, filter, offset, limit)
	}
	return nil, nil
}
func (m *mockContactRepo) Count(ctx context.Context, username string, filter model.ContactFilter) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, username, filter)
	}
	return 0, nil
}

var testUser = &model.User{Username: "testing", Name: "Testing"}

func strPtr(s string) *string { return &s }

// ownedBy は指定ユーザーが所有するID 1の連絡先だけを返すfindFn。
func ownedBy(owner string) func(ctx context.Context, id int64, username string) (*model.Contact, error) {
	return func(ctx context.Context, id int64, username string) (*model.Contact, error) {
		if id != 1 || username != owner {
			return nil, nil
		}
		return &model.Contact{ID: 1, FirstName: "aulian", Username: owner}, nil
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != model.ErrCodeNotFound {
		t.Errorf("code = %q, want NOT_FOUND", apiErr.Code)
	}
}

// --- テスト ---

func TestService_Create(t *testing.T) {
	var created *model.Contact
	repo := &mockContactRepo{
		createFn: func(ctx context.Context, contact *model.Contact) error {
			contact.ID = 10
			created = contact
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), testUser, validation.CreateContactRequest{
		FirstName: "aulian",
		LastName:  strPtr("danishwarman"),
		Email:     strPtr(""),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.ID != 10 || resp.FirstName != "aulian" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if created.Username != "testing" {
		t.Errorf("owner = %q, want testing", created.Username)
	}
	if created.Email != nil {
		t.Error("empty email should be stored as NULL")
	}
}

func TestService_Create_Invalid(t *testing.T) {
	svc := NewService(&mockContactRepo{
		createFn: func(ctx context.Context, contact *model.Contact) error {
			t.Fatal("Create must not be called on validation failure")
			return nil
		},
	})

	_, err := svc.Create(context.Background(), testUser, validation.CreateContactRequest{Email: strPtr("aulian")})

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *model.ValidationError, got %T", err)
	}
}

func TestService_Get(t *testing.T) {
	svc := NewService(&mockContactRepo{findFn: ownedBy("testing")})

	resp, err := svc.Get(context.Background(), testUser, 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if resp.FirstName != "aulian" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// 他ユーザー所有の連絡先は存在しても見えない
func TestService_Get_OtherOwner(t *testing.T) {
	svc := NewService(&mockContactRepo{findFn: ownedBy("someone-else")})

	_, err := svc.Get(context.Background(), testUser, 1)
	assertNotFound(t, err)
}

func TestService_CheckContactExist_RepositoryError(t *testing.T) {
	svc := NewService(&mockContactRepo{
		findFn: func(ctx context.Context, id int64, username string) (*model.Contact, error) {
			return nil, errors.New("db down")
		},
	})

	_, err := svc.CheckContactExist(context.Background(), "testing", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Error("infrastructure failure must not be an APIError")
	}
}

func TestService_Update(t *testing.T) {
	var written *model.Contact
	repo := &mockContactRepo{
		findFn: ownedBy("testing"),
		updateFn: func(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
			written = contact
			c := *contact
			return &c, nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Update(context.Background(), testUser, validation.UpdateContactRequest{
		ID:        1,
		FirstName: "cinthya",
		Phone:     strPtr("0821"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if resp.FirstName != "cinthya" || resp.Phone == nil || *resp.Phone != "0821" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if written.Username != "testing" {
		t.Errorf("update must be scoped to the caller, got %q", written.Username)
	}
}

func TestService_Update_KeepsOmittedFields(t *testing.T) {
	var written *model.Contact
	repo := &mockContactRepo{
		findFn: func(ctx context.Context, id int64, username string) (*model.Contact, error) {
			return &model.Contact{
				ID:        1,
				FirstName: "aulian",
				LastName:  strPtr("zaki"),
				Email:     strPtr("aulian@example.com"),
				Phone:     strPtr("0821"),
				Username:  username,
			}, nil
		},
		updateFn: func(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
			written = contact
			c := *contact
			return &c, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), testUser, validation.UpdateContactRequest{ID: 1, FirstName: "cinthya"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if written.FirstName != "cinthya" {
		t.Errorf("first_name = %q, want cinthya", written.FirstName)
	}
	if written.LastName == nil || *written.LastName != "zaki" {
		t.Errorf("last_name should be kept, got %v", written.LastName)
	}
	if written.Email == nil || *written.Email != "aulian@example.com" {
		t.Errorf("email should be kept, got %v", written.Email)
	}
	if written.Phone == nil || *written.Phone != "0821" {
		t.Errorf("phone should be kept, got %v", written.Phone)
	}
}

func TestService_Update_EmptyStringClearsField(t *testing.T) {
	var written *model.Contact
	repo := &mockContactRepo{
		findFn: func(ctx context.Context, id int64, username string) (*model.Contact, error) {
			return &model.Contact{ID: 1, FirstName: "aulian", LastName: strPtr("zaki"), Phone: strPtr("0821"), Username: username}, nil
		},
		updateFn: func(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
			written = contact
			c := *contact
			return &c, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), testUser, validation.UpdateContactRequest{ID: 1, FirstName: "aulian", LastName: strPtr("")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if written.LastName != nil {
		t.Errorf("last_name should be cleared, got %q", *written.LastName)
	}
	if written.Phone == nil || *written.Phone != "0821" {
		t.Errorf("phone should be kept, got %v", written.Phone)
	}
}

func TestService_Update_NotOwned(t *testing.T) {
	svc := NewService(&mockContactRepo{
		findFn: ownedBy("testing"),
		updateFn: func(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
			t.Fatal("Update must not be called for a missing contact")
			return nil, nil
		},
	})

	_, err := svc.Update(context.Background(), testUser, validation.UpdateContactRequest{ID: 2, FirstName: "x"})
	assertNotFound(t, err)
}

func TestService_Delete(t *testing.T) {
	deleted := false
	svc := NewService(&mockContactRepo{
		findFn: ownedBy("testing"),
		deleteFn: func(ctx context.Context, id int64, username string) (bool, error) {
			deleted = true
			return true, nil
		},
	})

	msg, err := svc.Delete(context.Background(), testUser, 1)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if msg != ContactDeletedMessage {
		t.Errorf("message = %q, want %q", msg, ContactDeletedMessage)
	}
	if !deleted {
		t.Error("expected Delete to be called")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(&mockContactRepo{findFn: ownedBy("testing")})

	_, err := svc.Delete(context.Background(), testUser, 99)
	assertNotFound(t, err)
}

func TestService_Search_Paging(t *testing.T) {
	var gotFilter model.ContactFilter
	var gotOffset, gotLimit int
	var countFilter model.ContactFilter
	repo := &mockContactRepo{
		searchFn: func(ctx context.Context, username string, filter model.ContactFilter, offset, limit int) ([]*model.Contact, error) {
			gotFilter, gotOffset, gotLimit = filter, offset, limit
			return []*model.Contact{{ID: 1, FirstName: "aulian", Username: username}}, nil
		},
		countFn: func(ctx context.Context, username string, filter model.ContactFilter) (int, error) {
			countFilter = filter
			return 2, nil
		},
	}
	svc := NewService(repo)

	page, err := svc.Search(context.Background(), testUser, validation.SearchContactRequest{
		Name: "ian", Page: 1, Size: 1,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(page.Data) != 1 {
		t.Errorf("len(data) = %d, want 1", len(page.Data))
	}
	want := model.Paging{CurrentPage: 1, TotalPage: 2, Size: 1}
	if page.Paging != want {
		t.Errorf("paging = %+v, want %+v", page.Paging, want)
	}
	if gotOffset != 0 || gotLimit != 1 {
		t.Errorf("offset/limit = %d/%d, want 0/1", gotOffset, gotLimit)
	}
	if gotFilter.Name != "ian" || countFilter != gotFilter {
		t.Errorf("count filter %+v must equal search filter %+v", countFilter, gotFilter)
	}
}

func TestService_Search_SecondPage(t *testing.T) {
	var gotOffset int
	svc := NewService(&mockContactRepo{
		searchFn: func(ctx context.Context, username string, filter model.ContactFilter, offset, limit int) ([]*model.Contact, error) {
			gotOffset = offset
			return nil, nil
		},
		countFn: func(ctx context.Context, username string, filter model.ContactFilter) (int, error) {
			return 25, nil
		},
	})

	page, err := svc.Search(context.Background(), testUser, validation.SearchContactRequest{Page: 3, Size: 10})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotOffset != 20 {
		t.Errorf("offset = %d, want 20", gotOffset)
	}
	if page.Paging.TotalPage != 3 {
		t.Errorf("total_page = %d, want 3", page.Paging.TotalPage)
	}
	if page.Data == nil {
		t.Error("data must be an empty list, not nil")
	}
}

func TestService_Search_Invalid(t *testing.T) {
	svc := NewService(&mockContactRepo{})
	_, err := svc.Search(context.Background(), testUser, validation.SearchContactRequest{Page: 0, Size: 10})

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *model.ValidationError, got %T", err)
	}
}
