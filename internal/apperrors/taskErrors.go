package apperrors

var (
	ErrTaskNotFound        = kind(ErrNotFound, "task not found")
	ErrTaskContentRequired = kind(ErrValidation, "task content is required")
	ErrTaskStatusInvalid   = kind(ErrValidation, "task status is not allowed")
	ErrAssigneeNotFound    = kind(ErrValidation, "assigned user does not exist")
)
