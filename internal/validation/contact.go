package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hitoshi/contactbook/internal/model"
)

// ページングのデフォルト値
const (
	DefaultPage = 1
	DefaultSize = 10
)

// CreateContactRequest は連絡先作成リクエスト。
type CreateContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,max=100,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateContactRequest は連絡先更新リクエスト。IDはURLパスから設定する。
type UpdateContactRequest struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,max=100,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// SearchContactRequest は連絡先検索リクエスト。
type SearchContactRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Email string `json:"email" validate:"omitempty,max=100"`
	Page  int    `json:"page" validate:"min=1"`
	Size  int    `json:"size" validate:"min=1,max=100"`
}

// Filter は検索条件をリポジトリ用のフィルタに変換する。
func (r SearchContactRequest) Filter() model.ContactFilter {
	return model.ContactFilter{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
	}
}

// Offset はページ番号とサイズから読み飛ばす件数を算出する。
func (r SearchContactRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

// ParseSearchContactRequest はクエリ文字列から検索リクエストを組み立てて検証する。
// page/sizeが省略された場合はデフォルト値を使い、数値でない場合は違反として扱う。
func ParseSearchContactRequest(q url.Values) (SearchContactRequest, error) {
	req := SearchContactRequest{
		Name:  strings.TrimSpace(q.Get("name")),
		Phone: strings.TrimSpace(q.Get("phone")),
		Email: strings.TrimSpace(q.Get("email")),
	}

	page, pageErr := queryInt(q, "page", DefaultPage)
	size, sizeErr := queryInt(q, "size", DefaultSize)
	req.Page = page
	req.Size = size

	var structErr error
	if pageErr == nil && sizeErr == nil {
		structErr = Validate(req)
	} else {
		// 数値変換に失敗したフィールドはデフォルト値で残りを検証する
		probe := req
		if pageErr != nil {
			probe.Page = DefaultPage
		}
		if sizeErr != nil {
			probe.Size = DefaultSize
		}
		structErr = Validate(probe)
	}

	if err := merge(pageErr, sizeErr, structErr); err != nil {
		return SearchContactRequest{}, err
	}
	return req, nil
}

func queryInt(q url.Values, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(key, "must be a number")
	}
	return n, nil
}
