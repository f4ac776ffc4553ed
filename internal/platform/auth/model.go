package auth

import "time"

const (
	RoleInspector = "inspector"
	RoleAdmin     = "admin"
)

// User is an account that can log in and file P2H reports.
type User struct {
	UserID       uint64
	NIK          string // employee number, unique login key
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// ===== DTOs =====

type LoginRequest struct {
	NIK      string `json:"nik" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint64 `json:"user_id"`
	NIK      string `json:"nik"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	NIK      string `json:"nik" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UserResponse struct {
	UserID   uint64 `json:"user_id"`
	NIK      string `json:"nik"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u User) toDTO() UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		NIK:      u.NIK,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
