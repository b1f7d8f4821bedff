package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user is inactive")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrAnalysisNotFound      = errors.New("analysis not found")
	ErrItemNotFound          = errors.New("checklist item not found")
	ErrItemNotUploaded       = errors.New("checklist item has no uploaded file")
	ErrDuplicateDocumentType = errors.New("document type already exists")
	ErrDocumentTypeInUse     = errors.New("document type is referenced by existing analyses")
	ErrDuplicateField        = errors.New("a field with this key or label already exists")
	ErrFieldProtected        = errors.New("field is protected and cannot be removed")
	ErrFieldNotFound         = errors.New("user data field not found")
	ErrUserDataInvalid       = errors.New("user data failed validation")
	ErrNoUploadedItems       = errors.New("no uploaded documents to verify")
	ErrRunInProgress         = errors.New("a verification run is already in progress for this analysis")
	ErrCredentialMissing     = errors.New("model API credential not provided")
	ErrNoUserDataFields      = errors.New("no user data fields are configured")
)
