package dto

// TargetIdentity tells admin operations whether the target is a sub-account,
// in which case the contact-match defense runs against the parent's contact.
type TargetIdentity string

const (
	IdentityDirect  TargetIdentity = ""
	IdentitySubUser TargetIdentity = "subUser"
)

// ApproveRejectRequest carries an admin approval or rejection. Exactly one
// of Approved/Rejected must be true.
type ApproveRejectRequest struct {
	UserID   int64  `json:"id" binding:"required"`
	Contact  string `json:"contact"`
	Approved bool   `json:"approved"`
	Rejected bool   `json:"rejected"`
	Identity string `json:"identity"`
}

// PostponeReinstateRequest toggles the postponed flag on an approved, paid,
// verified account.
type PostponeReinstateRequest struct {
	UserID   int64  `json:"id" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
	Identity string `json:"identity"`
}

// DeleteUserRequest hard-deletes an account and its sub-accounts.
type DeleteUserRequest struct {
	UserID   int64  `json:"id" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
	Identity string `json:"identity"`
}

// AdminActionResponse reports the outcome of an admin state transition.
type AdminActionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
