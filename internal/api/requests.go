package api

// LoginRequest carries credentials for the login operation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields collected by the registration screen.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ForgotPasswordRequest asks the server to start a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// MarkReadRequest marks a single notification as read.
type MarkReadRequest struct {
	NotificationID string `json:"notification_id"`
}
