package handlers

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
	ErrInviteNotFound      = "Invite not found"

	// Browser-facing copy for the error page
	MsgInviteInvalid  = "This invite link is invalid or has expired."
	MsgInviteInternal = "Something went wrong processing this invite. Please try again later."
)
