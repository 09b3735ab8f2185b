package api

// API endpoint paths, relative to the configured base URL.
const (
	pathLogin          = "auth/login"
	pathRegister       = "auth/register"
	pathForgotPassword = "user/forgot_password"

	pathGetProfile    = "user/profile"
	pathUpdateProfile = "user/update_profile"

	pathNotifications = "notifications"
	pathMarkRead      = "notifications/mark_read"
)
