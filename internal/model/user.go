// Package model はドメインモデルを定義する。
package model

// User はアドレス帳の所有者を表す。
// Passwordはbcryptハッシュ、Tokenはログイン中のみ設定される不透明なセッション識別子。
type User struct {
	Username string
	Name     string
	Password string
	Token    *string
}

// UserResponse はユーザーのレスポンス射影。パスワードは含まない。
// Tokenはログイン直後のレスポンスでのみ設定される。
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// ToUserResponse はUserをレスポンス射影に変換する。
func ToUserResponse(u *User) *UserResponse {
	return &UserResponse{
		Username: u.Username,
		Name:     u.Name,
	}
}
