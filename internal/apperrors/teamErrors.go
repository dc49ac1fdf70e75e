package apperrors

var (
	ErrTeamNotFound       = kind(ErrNotFound, "team not found")
	ErrTeamNameRequired   = kind(ErrValidation, "team name is required")
	ErrTeamMembersCount   = kind(ErrValidation, "team must have between 2 and 3 members")
	ErrInvalidTeamMember  = kind(ErrValidation, "invalid team member")
	ErrAttendanceRequired = kind(ErrValidation, "attendance records are required")
)
