// Package user はユーザー登録、認証、プロフィール管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/repository"
	"github.com/hitoshi/contactbook/internal/validation"
)

// LogoutMessage はログアウト成功時にdataとして返す確認値。
const LogoutMessage = "OK"

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo   repository.UserRepository
	bcryptCost int
	newToken   func() string
}

// NewService はServiceの新しいインスタンスを生成する。
// bcryptCostがbcrypt.MinCost未満の場合はbcrypt.DefaultCostが使われる。
func NewService(userRepo repository.UserRepository, bcryptCost int) *Service {
	return &Service{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		newToken:   uuid.NewString,
	}
}

// Register はユーザーを登録する。usernameが既に存在する場合はCONFLICTを返す。
func (s *Service) Register(ctx context.Context, req validation.RegisterUserRequest) (*model.UserResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("ユーザー数の取得に失敗しました: %w", err)
	}
	if count != 0 {
		return nil, model.NewConflictError(model.MsgUsernameAlreadyExists)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Name:     req.Name,
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered", slog.String("username", user.Username))

	return model.ToUserResponse(user), nil
}

// Login は認証情報を検証し、新しいトークンを発行する。
// usernameの不在とパスワード不一致はどちらも同じUNAUTHORIZEDになる。
func (s *Service) Login(ctx context.Context, req validation.LoginUserRequest) (*model.UserResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUnauthorizedError(model.MsgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.NewUnauthorizedError(model.MsgInvalidCredentials)
	}

	token := s.newToken()
	user.Token = &token

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("トークンの保存に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewUnauthorizedError(model.MsgInvalidCredentials)
	}

	slog.Info("user logged in", slog.String("username", updated.Username))

	resp := model.ToUserResponse(updated)
	resp.Token = token
	return resp, nil
}

// Get は認証済みユーザーの射影を返す。永続化層にはアクセスしない。
func (s *Service) Get(_ context.Context, user *model.User) *model.UserResponse {
	return model.ToUserResponse(user)
}

// Update は指定されたフィールドのみを更新する。
// nameとpasswordの両方が省略された場合も書き込みは行う。
func (s *Service) Update(ctx context.Context, user *model.User, req validation.UpdateUserRequest) (*model.UserResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	next := *user
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		next.Password = hash
	}

	updated, err := s.userRepo.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewUnauthorizedError(model.MsgUnauthorized)
	}

	return model.ToUserResponse(updated), nil
}

// Logout はユーザーのトークンをNULLに戻す。古いトークンは以後認証に使えない。
func (s *Service) Logout(ctx context.Context, user *model.User) (*model.UserResponse, error) {
	next := *user
	next.Token = nil

	updated, err := s.userRepo.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("ログアウトに失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewUnauthorizedError(model.MsgUnauthorized)
	}

	slog.Info("user logged out", slog.String("username", updated.Username))

	return model.ToUserResponse(updated), nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}
	return string(hash), nil
}
