package errors

import "errors"

// As is a wrapper around errors.As for our Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is reports whether err matches target in its chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the code from an error, defaulting to CodeInternal for
// foreign errors and CodeOK for nil.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeInternal
}

// GetMessage extracts the message from an error.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured.Message
	}
	return err.Error()
}

// GetMeta extracts metadata from an error, nil when absent.
func GetMeta(err error) map[string]any {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.Meta
	}
	return nil
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports whether err carries CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsFailedPrecondition reports whether err carries CodeFailedPrecondition.
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsInternal reports whether err carries CodeInternal.
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable reports whether err carries CodeUnavailable.
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsDataLoss reports whether err carries CodeDataLoss.
func IsDataLoss(err error) bool {
	return GetCode(err) == CodeDataLoss
}
