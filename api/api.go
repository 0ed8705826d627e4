package api

import (
	"net/http"
	"strings"
	"unicode"
)

type ErrorKey string

func (e ErrorKey) String() string {
	return string(e)
}

type ErrorCategory string

func (e ErrorCategory) String() string {
	return string(e)
}

// AppError holds information that is helpful in logging and reporting errors, whether they end up as an
// HTTP response from the photo service or as a transient notice in the inspection editor.
type AppError struct {
	Err error `json:"-"`

	// Don't change the value of these Key entries without making a corresponding change on the UI,
	// since these will be converted to human-friendly texts for presentation to the user
	Key ErrorKey `json:"key"`

	HttpStatus int `json:"status"`

	// detailed error message for debugging
	DebugMsg string `json:"debug_msg,omitempty"`

	Category ErrorCategory `json:"-"`

	Message string `json:"message"`

	// Extra data providing detail about the error condition, only provided in development mode
	Extras map[string]any `json:"extras,omitempty"`
}

func (a *AppError) Error() string {
	if a.Err == nil {
		return ""
	}
	return a.Err.Error()
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// NewAppError returns a new AppError with its Err, Key and Category set
func NewAppError(err error, key ErrorKey, category ErrorCategory) *AppError {
	return &AppError{
		Err:      err,
		Key:      key,
		Category: category,
	}
}

// SetHttpStatusFromCategory assigns the appropriate HTTP status based on the error category, if not
// already set.
func (a *AppError) SetHttpStatusFromCategory() {
	if a.HttpStatus != 0 {
		return
	}

	switch a.Category {
	case CategoryInternal, CategoryStorage:
		a.HttpStatus = http.StatusInternalServerError
	case CategoryNotFound:
		a.HttpStatus = http.StatusNotFound
	default:
		a.HttpStatus = http.StatusBadRequest
	}
}

// LoadMessage assigns the user-facing message for the Key, unless the HttpStatus is 500 in which case a
// standard message is used.
func (a *AppError) LoadMessage() {
	key := a.Key

	if a.HttpStatus == http.StatusInternalServerError {
		key = ErrorGenericInternalServer
	}

	a.Message = key.Message()
}

// keyToReadableString takes a key like ErrorSomethingSomethingOther and returns Something something other.
// Acronyms such as ID stay together, and any initial lowercase letters are lost.
func keyToReadableString(key string) string {
	words := splitWords(key)
	if len(words) == 0 {
		return key
	}
	if len(words) > 1 && words[0] == "Error" {
		words = words[1:]
	}

	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]

	return strings.Join(words, " ")
}

// splitWords splits a CamelCase string into words. A word starts at an uppercase letter that follows a
// lowercase one, or at the last capital of an acronym that is followed by a lowercase letter.
func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := -1
	for i, r := range rs {
		if !unicode.IsUpper(r) {
			continue
		}
		boundary := i == 0 || !unicode.IsUpper(rs[i-1]) || (i+1 < len(rs) && unicode.IsLower(rs[i+1]))
		if !boundary {
			continue
		}
		if start >= 0 {
			words = append(words, string(rs[start:i]))
		}
		start = i
	}
	if start >= 0 {
		words = append(words, string(rs[start:]))
	}
	return words
}

// MergeExtras returns a single map with the all the key-values pairs of the input map
//
//	Key-value pairs in later maps will overwrite matching ones from earlier maps
func MergeExtras(extras []map[string]any) map[string]any {
	allExtras := map[string]any{}

	if len(extras) == 1 {
		return extras[0]
	}

	for _, e := range extras {
		for k, v := range e {
			allExtras[k] = v
		}
	}

	return allExtras
}
