package api

const (
	CategoryUser     = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryNotFound = ErrorCategory("NotFound")
	CategoryStorage  = ErrorCategory("Storage")  // the photo storage collaborator failed
	CategoryInternal = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// File
	ErrorMissingGroupKey         = ErrorKey("ErrorMissingGroupKey")
	ErrorReceivingFile           = ErrorKey("ErrorReceivingFile")
	ErrorStoreFileBadContentType = ErrorKey("ErrorStoreFileBadContentType")
	ErrorStoreFileTooLarge       = ErrorKey("ErrorStoreFileTooLarge")
	ErrorUnableToReadFile        = ErrorKey("ErrorUnableToReadFile")
	ErrorUnableToStoreFile       = ErrorKey("ErrorUnableToStoreFile")

	// Photo
	ErrorPhotoCapacity    = ErrorKey("ErrorPhotoCapacity")
	ErrorPhotoCompression = ErrorKey("ErrorPhotoCompression")
	ErrorPhotoUpload      = ErrorKey("ErrorPhotoUpload")
)

// Message returns the user-facing English text for the key. Unknown keys fall back to a readable form of
// the key itself.
func (e ErrorKey) Message() string {
	switch e {
	case ErrorGenericInternalServer:
		return "An internal system error has occurred"
	case ErrorInvalidRequestBody:
		return "The request could not be understood"
	case ErrorMissingGroupKey:
		return "A group key is required to store a photo"
	case ErrorReceivingFile:
		return "The uploaded file could not be received"
	case ErrorStoreFileBadContentType:
		return "Only image files can be attached"
	case ErrorStoreFileTooLarge:
		return "The file is too large"
	case ErrorUnableToReadFile:
		return "The uploaded file could not be read"
	case ErrorUnableToStoreFile:
		return "The file could not be stored"
	case ErrorPhotoCapacity:
		return "Photo limit reached"
	case ErrorPhotoCompression:
		return "The photo could not be compressed"
	case ErrorPhotoUpload:
		return "The photo could not be uploaded"
	}
	return keyToReadableString(e.String())
}
