package apperrors

var (
	ErrFileNotFound     = kind(ErrNotFound, "file not found")
	ErrFileNameRequired = kind(ErrValidation, "file name is required")
	ErrFileEmpty        = kind(ErrValidation, "file is empty")
)
