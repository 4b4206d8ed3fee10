package service

import "errors"

// Kinds of service failures. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)

// Client-facing messages.
const (
	MsgVendorNotFound      = "Vendor not found"
	MsgTeamMemberNotFound  = "Team member not found"
	MsgDocumentNotFound    = "Document not found"
	MsgFileNotFound        = "File not found on disk"
	MsgUserNotFound        = "User not found"
	MsgEmailInUse          = "Email already in use"
	MsgVendorExists        = "Vendor already exists"
	MsgVendorNameRequired  = "Vendor name required"
	MsgRegisterRequired    = "Email, password, and name required"
	MsgLoginRequired       = "Email and password required"
	MsgUploadRequired      = "Vendor ID, title, and file required"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgNoToken             = "No token provided"
	MsgInvalidToken        = "Invalid or expired token"
	MsgInvalidSupportLevel = "Invalid support level"
	MsgSetupRequired       = "Setup token and password required"
	MsgSetupCompleted      = "Admin setup already completed"
)

// Error is a failure that is safe to show to the client.
// Anything that is not an *Error is an internal failure.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func validationError(msg string) *Error { return newError(ErrValidation, msg) }
func conflictError(msg string) *Error   { return newError(ErrConflict, msg) }
func notFoundError(msg string) *Error   { return newError(ErrNotFound, msg) }
