// AngelaMos | 2026
// dto.go

package user

type SeedUserRequest struct {
	Email    string `validate:"required,email,max=255"`
	Username string `validate:"required,min=1,max=255"`
	Password string `validate:"required,min=6,max=128"`
	Role     string `validate:"required,oneof=manager landlord"`
}

// UserResponse is the public summary of a user. The password hash never
// leaves the package.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
	}
}
