package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	// Filled by the handler from the request, never from the body.
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}
