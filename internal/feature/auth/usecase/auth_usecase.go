package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blog_backend/internal/feature/auth/domain/entity"
)

// passwordHashCost はbcryptのコスト係数です。
const passwordHashCost = 10

// maxPasswordBytes はbcryptが扱える入力の上限です。超過分は切り捨てます。
const maxPasswordBytes = 72

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化し、IDを設定します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// RegisterInput holds the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func (in RegisterInput) complete() bool {
	return in.Name != "" && in.Email != "" && in.Password != "" && in.Phone != ""
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// Register はパスワードをハッシュ化してユーザーを登録し、採番されたIDを返します。
// 平文のパスワードがストアに渡ることはありません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (uint, error) {
	if !in.complete() {
		return 0, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(in.Password), passwordHashCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Phone:    in.Phone,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login はメールアドレスでユーザーを検索し、パスワードを照合してトークンを返します。
// 判定順序: ストアエラー → ユーザー未検出(ErrUserNotFound) → 照合失敗(ErrInvalidCredentials) → トークン発行
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), bcryptInput(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		// 保存値がbcryptハッシュとして不正な場合も照合失敗として扱う
		return "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// bcryptInput は先頭72バイトのみを返します。
// 登録時と照合時で同じ切り詰めを行うため、長いパスワードでもログインできます。
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
