package apperrors

var (
	ErrProjectNotFound    = kind(ErrNotFound, "project not found")
	ErrProjectNameInvalid = kind(ErrValidation, "project name must be 1 to 100 characters")
	ErrNotProjectMember   = kind(ErrForbidden, "not a member of this project")
	ErrNotProjectOwner    = kind(ErrForbidden, "only the project owner can do this")
	ErrAlreadyMember      = kind(ErrConflict, "user is already a member of this project")
	ErrInviteeNotFound    = kind(ErrNotFound, "user must log in at least once before being invited")
)
