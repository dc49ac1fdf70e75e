package apperrors

var (
	ErrUserNotFound       = kind(ErrNotFound, "user not found")
	ErrUserExists         = kind(ErrConflict, "user already exists")
	ErrInvalidEmail       = kind(ErrValidation, "invalid email")
	ErrPasswordTooShort   = kind(ErrValidation, "password must be at least 6 characters")
	ErrInvalidCredentials = kind(ErrUnauthenticated, "invalid email or password")
	ErrInvalidToken       = kind(ErrUnauthenticated, "invalid or expired token")
)
