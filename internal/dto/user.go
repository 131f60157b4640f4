package dto

// UpdateUserRequest updates the calling user's display names. The English
// profile name is re-derived from first and last name.
type UpdateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	NameBn    string `json:"name_bn"`
}

// ChangePasswordRequest rotates the calling user's password after checking
// the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ListUsersParams defines query parameters for listing registered accounts.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of accounts a data collector registered.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}
