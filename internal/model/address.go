package model

// Address は連絡先に紐付く住所を表す。
// 親のContactが削除されるとスキーマのCASCADEにより削除される。
type Address struct {
	ID         int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}

// AddressResponse は住所のレスポンス射影。contact_idは含まない。
type AddressResponse struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
}

// ToAddressResponse はAddressをレスポンス射影に変換する。
func ToAddressResponse(a *Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
