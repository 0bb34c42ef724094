package dto

import "github.com/inkledger/inkledger_backend/internal/core/domain"

// LoginRequest defines the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token   string      `json:"token"`
	PartyID string      `json:"partyID"`
	Role    domain.Role `json:"role"`
}
