package domain

import "time"

// ContactChannel names one of the two contact channels a user can verify.
type ContactChannel string

const (
	ChannelPhone ContactChannel = "phone"
	ChannelEmail ContactChannel = "email"
)

// PaymentStatus tracks where the user sits in the payment step of the
// registration flow. It is mutated by the payment collaborator, never here.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// User represents an account: a principal with credentials, a role, and a
// position in the parent/sub-account hierarchy. ParentID, AddByID,
// ApprovedByID and RejectedByID are weak back-references by identifier;
// only the parent relation cascades on delete.
type User struct {
	UserID       int64   `json:"userID"`
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PasswordHash string  `json:"-"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`

	Role     Role   `json:"role"`
	ParentID *int64 `json:"parentID,omitempty"`
	AddByID  *int64 `json:"addByID,omitempty"`

	EmailVerified bool `json:"emailVerified"`
	PhoneVerified bool `json:"phoneVerified"`
	// Pending one-time codes with their issue timestamps. Cleared on
	// successful verification; codes older than the configured window are
	// treated as mismatches.
	EmailCode       *string    `json:"-"`
	PhoneCode       *string    `json:"-"`
	EmailCodeSentAt *time.Time `json:"-"`
	PhoneCodeSentAt *time.Time `json:"-"`

	PaymentStatus PaymentStatus `json:"paymentStatus"`

	Approved     bool       `json:"approved"`
	ApprovedByID *int64     `json:"approvedByID,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	Rejected     bool       `json:"rejected"`
	RejectedByID *int64     `json:"rejectedByID,omitempty"`
	RejectedAt   *time.Time `json:"rejectedAt,omitempty"`
	Postponed    bool       `json:"postponed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contact returns the stored contact value for the given channel, or nil.
func (u *User) Contact(channel ContactChannel) *string {
	if channel == ChannelPhone {
		return u.Phone
	}
	return u.Email
}

// ChannelVerified reports whether the given channel has been verified.
func (u *User) ChannelVerified(channel ContactChannel) bool {
	if channel == ChannelPhone {
		return u.PhoneVerified
	}
	return u.EmailVerified
}

// HasVerifiedChannel reports whether at least one contact channel is verified.
func (u *User) HasVerifiedChannel() bool {
	return u.EmailVerified || u.PhoneVerified
}

// MatchesContact reports whether the supplied contact equals the user's
// email or phone. Used as a defense against admin actions on the wrong record.
func (u *User) MatchesContact(contact string) bool {
	if contact == "" {
		return false
	}
	if u.Email != nil && *u.Email == contact {
		return true
	}
	if u.Phone != nil && *u.Phone == contact {
		return true
	}
	return false
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
