package utils

import (
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// AllowedImageContentTypes is the set of allowed content types for image uploads.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxUploadSize is the maximum accepted size of an original, pre-compression upload.
const MaxUploadSize = 10 << 20

// ValidateFileUpload checks that the uploaded file has a valid image content type
// and does not exceed the maximum file size.
func ValidateFileUpload(fh *multipart.FileHeader) error {
	// Check file size
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 10MB", fh.Size)
	}

	// Check content type
	contentType := fh.Header.Get("Content-Type")
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp, image/gif", contentType)
	}

	return nil
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	// Try to cast to validator.ValidationErrors
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// If it's not a validation error, return a generic message
		// Check for common binding error patterns
		return "Invalid request body"
	}

	// Build user-friendly error messages from field-level errors
	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "uuid", "uuid4":
			messages = append(messages, fmt.Sprintf("%s must be a valid id", field))
		case "hexcolor":
			messages = append(messages, fmt.Sprintf("%s must be a hex color such as #a1b2c3", field))
		case "url", "http_url":
			messages = append(messages, fmt.Sprintf("%s must be a valid URL", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}

// jsonFieldName reports a struct field by its json tag so validation messages
// name the field the client actually sent.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames switches gin's binding validator to json tag names.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}
