package validation

// CreateAddressRequest は住所作成リクエスト。ContactIDはURLパスから設定する。
type CreateAddressRequest struct {
	ContactID  int64   `json:"contact_id"`
	Street     *string `json:"street" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,min=1,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,min=1,max=10"`
}

// UpdateAddressRequest は住所更新リクエスト。ID・ContactIDはURLパスから設定する。
type UpdateAddressRequest struct {
	ID         int64   `json:"id"`
	ContactID  int64   `json:"contact_id"`
	Street     *string `json:"street" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,min=1,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,min=1,max=10"`
}

// GetAddressRequest は住所の取得・削除で使う(contact_id, id)の組。
type GetAddressRequest struct {
	ID        int64 `json:"id"`
	ContactID int64 `json:"contact_id"`
}
