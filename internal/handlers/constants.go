package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgInvalidCredentials = "Invalid email or password"
	ErrMsgMissingCode        = "code is required"
	ErrMsgInternal           = "Internal server error"
)
