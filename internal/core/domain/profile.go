package domain

import "time"

// UserProfile holds the extended personal record attached to public and
// sub-account users. Created in the same transaction as the user row.
type UserProfile struct {
	ProfileID int64 `json:"profileID"`
	UserID    int64 `json:"userID"`

	NameEn string `json:"nameEn"`
	NameBn string `json:"nameBn"`

	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	NID           *string `json:"nid,omitempty"`
	GuardianNID   *string `json:"guardianNID,omitempty"`
	GuardianPhone *string `json:"guardianPhone,omitempty"`
	GuardianEmail *string `json:"guardianEmail,omitempty"`
	Relationship  *string `json:"relationship,omitempty"`

	FatherNameEn *string `json:"fatherNameEn,omitempty"`
	FatherNameBn *string `json:"fatherNameBn,omitempty"`
	MotherNameEn *string `json:"motherNameEn,omitempty"`
	MotherNameBn *string `json:"motherNameBn,omitempty"`
	SpouseNameEn *string `json:"spouseNameEn,omitempty"`
	SpouseNameBn *string `json:"spouseNameBn,omitempty"`

	Occupation  *string    `json:"occupation,omitempty"`
	BloodGroup  *string    `json:"bloodGroup,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
