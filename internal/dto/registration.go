package dto

import "fmt"

// RegistrationKind is the tagged discriminant for the three account
// creation variants. Each variant carries exactly the fields valid for it.
type RegistrationKind string

const (
	RegisterSelf       RegistrationKind = "self"
	RegisterPublic     RegistrationKind = "public"
	RegisterSubAccount RegistrationKind = "sub_account"
)

// ParseRegistrationKind validates a for_account discriminant from the wire.
func ParseRegistrationKind(s string) (RegistrationKind, error) {
	switch RegistrationKind(s) {
	case RegisterSelf, RegisterPublic, RegisterSubAccount:
		return RegistrationKind(s), nil
	default:
		return "", fmt.Errorf("invalid account type %q", s)
	}
}

// RegisterSelfRequest registers the calling data collector's own account.
type RegisterSelfRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone" binding:"omitempty,bdphone"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ProfilePayload is the profile half of a public registration.
type ProfilePayload struct {
	NameBn        string `json:"name_bn"`
	Phone         string `json:"phone" binding:"omitempty,bdphone"`
	Email         string `json:"email" binding:"omitempty,email"`
	NID           string `json:"nid"`
	GuardianNID   string `json:"guardian_nid"`
	GuardianPhone string `json:"gurdian_phone" binding:"omitempty,bdphone"`
	GuardianEmail string `json:"gurdian_email" binding:"omitempty,email"`
	Relationship  string `json:"relationship"`
	FatherNameEn  string `json:"father_name_en"`
	FatherNameBn  string `json:"father_name_bn"`
	MotherNameEn  string `json:"mother_name_en"`
	MotherNameBn  string `json:"mother_name_bn"`
	SpouseNameEn  string `json:"spouse_name_en"`
	SpouseNameBn  string `json:"spouse_name_bn"`
	Occupation    string `json:"occupation"`
	BloodGroup    string `json:"blood_group"`
	DateOfBirth   string `json:"date_of_birth"`
}

// RegisterPublicRequest registers an end-user account plus its profile.
// Both halves persist in one transaction.
type RegisterPublicRequest struct {
	User    RegisterSelfRequest `json:"user_data" binding:"required"`
	Profile ProfilePayload      `json:"user_profile"`
}

// RegisterSubAccountRequest registers a dependent account under an existing
// public account. The parent's profile guardian NID must match GuardianNID;
// the password is system-generated and delivered to the parent's contact.
type RegisterSubAccountRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	ParentID    int64  `json:"parent" binding:"required"`
	GuardianNID string `json:"guardian_nid" binding:"required"`
	Phone       string `json:"phone" binding:"omitempty,bdphone"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// RegistrationResult is the created-account summary returned with 201.
// ApplicationID doubles as the user id; callers quote it during payment.
type RegistrationResult struct {
	UserID        int64  `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Name          string `json:"name"`
	ApplicationID int64  `json:"application_id"`
	Contact       string `json:"contact"`
	ContactType   string `json:"contact_type"`
}
