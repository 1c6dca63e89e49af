package model

// Contact はユーザーが所有する連絡先を表す。
// Usernameは所有ユーザーへの外部キーで、すべての読み書きは(ID, Username)で絞り込む。
type Contact struct {
	ID        int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	Username  string
}

// ContactResponse は連絡先のレスポンス射影。所有者のusernameは含まない。
type ContactResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// ToContactResponse はContactをレスポンス射影に変換する。
func ToContactResponse(c *Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// ContactFilter は連絡先検索の絞り込み条件。
// 空文字のフィールドは条件に含めない。指定されたフィールドはすべてANDで結合する。
type ContactFilter struct {
	// Name はfirst_nameまたはlast_nameの部分一致
	Name string
	// Phone はphoneの部分一致
	Phone string
	// Email はemailの部分一致
	Email string
}

// Paging は一覧レスポンスのページ情報。
type Paging struct {
	CurrentPage int `json:"current_page"`
	TotalPage   int `json:"total_page"`
	Size        int `json:"size"`
}

// Page はページ付き一覧の結果。
type Page[T any] struct {
	Data   []T
	Paging Paging
}

// TotalPages は総件数とページサイズから総ページ数を切り上げで算出する。
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
