package dto

import "github.com/nagorik/citizen-registry/internal/core/domain"

// SendOTPRequest asks for a fresh one-time code on a contact channel.
type SendOTPRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	Contact     string `json:"contact" binding:"required"`
	ContactType string `json:"contact_type" binding:"required,oneof=phone email"`
}

// SendOTPResponse acknowledges dispatch without echoing the code.
type SendOTPResponse struct {
	SendOTP bool   `json:"send_otp"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// VerifyOTPRequest submits a code for verification.
type VerifyOTPRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	ContactType string `json:"contact_type" binding:"omitempty,oneof=phone email"`
}

// VerificationReceipt is returned on successful verification. Fees is a
// read-only breakdown looked up from the account's role; a lookup failure
// leaves Fees nil and sets Warning instead of failing the verification.
type VerificationReceipt struct {
	ApplicationID int64                `json:"application_id"`
	ContactType   string               `json:"contact_type"`
	Verified      bool                 `json:"verified"`
	Fees          *domain.FeeBreakdown `json:"fees,omitempty"`
	Warning       string               `json:"warning,omitempty"`
}
