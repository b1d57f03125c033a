package dto

// LoginRequest carries credentials for session creation.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the public projection of the authenticated account.
type LoginUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Kind      string `json:"kind"`
}

// LoginResponse returns the opaque session token and the account summary.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}
