package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/InfoRubix/stationery/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrBadCredentials 管理员登录失败
var ErrBadCredentials = errors.New("invalid email or password")

// AuthService 管理员登录。凭证来自配置（沿用旧系统的单一管理员账号模型），
// 签发JWT供后台接口使用。
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.App.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.App.AdminPassword)) == 1
	if !emailOK || !passOK {
		return nil, ErrBadCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.JWT.AccessTokenExpire)
	claims := jwt.MapClaims{
		"sub":   "admin",
		"uid":   "admin",
		"name":  "Administrator",
		"email": email,
		"roles": []string{"admin"},
		"iss":   s.cfg.JWT.Issuer,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"jti":   uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}
