package dto

import "github.com/nagorik/citizen-registry/internal/core/domain"

// UserResponse is the public view of an account returned after login,
// verification, and identity lookups.
type UserResponse struct {
	UserID        int64   `json:"id"`
	Username      *string `json:"username,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Name          string  `json:"name"`
	RoleName      string  `json:"roleName"`
	ParentID      *int64  `json:"parent,omitempty"`
	EmailVerified bool    `json:"email_verified"`
	PhoneVerified bool    `json:"phone_verified"`
	Verified      bool    `json:"verified"`
	PaymentStatus string  `json:"payment_status"`
	Approved      bool    `json:"approved"`
	Rejected      bool    `json:"rejected"`
	Postponed     bool    `json:"postponed"`
}

// ToUserResponse converts a domain.User to its public view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		Phone:         user.Phone,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Name:          user.FullName(),
		RoleName:      string(user.Role.Name),
		ParentID:      user.ParentID,
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
		Verified:      user.HasVerifiedChannel(),
		PaymentStatus: string(user.PaymentStatus),
		Approved:      user.Approved,
		Rejected:      user.Rejected,
		Postponed:     user.Postponed,
	}
}
