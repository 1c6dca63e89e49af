// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/contactbook/internal/metrics"
	"github.com/hitoshi/contactbook/internal/model"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// UserFinder はトークンからユーザーを引くためのインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByToken(ctx context.Context, token string) (*model.User, error)
}

// AuthFailureRecorder は認証失敗の記録先。
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// NewAuthMiddleware はAuthorizationヘッダーのトークンでユーザーを認証するミドルウェアを返す。
// ヘッダーは生のトークンと"Bearer <token>"の両方を受け付ける。
// 認証済みユーザーをリクエストコンテキストに注入し、
// トークンが無い・一致しない場合は後続ハンドラーを呼ばずに401を返し、
// ユーザーの取得自体に失敗した場合は500を返す。
func NewAuthMiddleware(finder UserFinder, recorder AuthFailureRecorder) func(next http.Handler) http.Handler {
	if recorder == nil {
		recorder = metrics.NopCollector{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromHeader(r.Header.Get(authorizationHeader))
			if token == "" {
				recorder.RecordAuthFailure(metrics.AuthFailureMissingToken)
				writeUnauthorized(w)
				return
			}

			user, err := finder.FindByToken(r.Context(), token)
			if err != nil {
				recorder.RecordAuthFailure(metrics.AuthFailureLookupError)
				WriteError(w, fmt.Errorf("トークンによるユーザーの取得に失敗しました: %w", err))
				return
			}
			if user == nil {
				recorder.RecordAuthFailure(metrics.AuthFailureUnknownToken)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// tokenFromHeader はヘッダー値からトークンを取り出す。Bearerスキームは大文字小文字を区別しない。
func tokenFromHeader(value string) string {
	value = strings.TrimSpace(value)
	if scheme, rest, ok := strings.Cut(value, " "); ok && strings.EqualFold(scheme, bearerScheme) {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(value, bearerScheme) {
		return ""
	}
	return value
}

func writeUnauthorized(w http.ResponseWriter) {
	WriteError(w, model.NewUnauthorizedError(model.MsgUnauthorized))
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// リクエストログの記録枠があればusernameも書き込む。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	if entry, ok := ctx.Value(requestLogContextKey).(*requestLogEntry); ok && user != nil {
		entry.username = user.Username
	}
	return context.WithValue(ctx, userContextKey, user)
}
