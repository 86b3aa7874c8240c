package dto

// CreateUserRequest is the DTO for registering a new user. The password is
// already hashed by the boundary layer.
type CreateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
}
