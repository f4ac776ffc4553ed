package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthFailed    = errors.New("authentication failed")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrDisabled      = errors.New("account disabled")
)

const tokenTTL = 24 * time.Hour

type Service struct {
	store  *Store
	secret []byte
}

// NewService builds the auth service. The signing secret comes from config.
func NewService(db *sql.DB, secret string) *Service {
	return &Service{store: NewStore(db), secret: []byte(secret)}
}

func (s *Service) Secret() []byte { return s.secret }

func (s *Service) Login(ctx context.Context, nik, password string) (LoginResponse, error) {
	u, err := s.store.GetByNIK(ctx, strings.TrimSpace(nik))
	if err != nil {
		return LoginResponse{}, err
	}
	if u == nil {
		return LoginResponse{}, ErrAuthFailed
	}
	if !u.IsActive {
		return LoginResponse{}, ErrDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResponse{}, ErrAuthFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.UserID,
		"nik":  u.NIK,
		"role": u.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token:    signed,
		UserID:   u.UserID,
		NIK:      u.NIK,
		FullName: u.FullName,
		Role:     u.Role,
	}, nil
}

func (s *Service) Register(ctx context.Context, in RegisterRequest) (UserResponse, error) {
	in.NIK = strings.TrimSpace(in.NIK)
	if in.Role == "" {
		in.Role = RoleInspector
	}
	if in.Role != RoleInspector && in.Role != RoleAdmin {
		return UserResponse{}, errors.New("role must be inspector or admin")
	}

	existing, err := s.store.GetByNIK(ctx, in.NIK)
	if err != nil {
		return UserResponse{}, err
	}
	if existing != nil {
		return UserResponse{}, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		NIK:          in.NIK,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
	}
	id, err := s.store.Create(ctx, u)
	if err != nil {
		return UserResponse{}, err
	}
	u.UserID = id
	return u.toDTO(), nil
}

func (s *Service) Deactivate(ctx context.Context, id uint64) error {
	n, err := s.store.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
