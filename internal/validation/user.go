package validation

// RegisterUserRequest はユーザー登録リクエスト。
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=6,max=12"`
	Name     string `json:"name" validate:"required,min=1,max=32"`
}

// LoginUserRequest はログインリクエスト。
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=6,max=12"`
}

// UpdateUserRequest はユーザー更新リクエスト。
// 省略されたフィールドは変更しない。空文字は省略とは扱わず違反になる。
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,min=1,max=32"`
	Password *string `json:"password,omitempty" validate:"omitnil,min=1,max=100"`
}
