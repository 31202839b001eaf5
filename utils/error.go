package utils

import "errors"

var (
	ErrorRecordNotFound = errors.New("record not found")

	// Document pipeline taxonomy. Handlers map these onto HTTP statuses;
	// everything else is a plain 500.
	ErrorInvalidId  = errors.New("invalid id")
	ErrorTemplate   = errors.New("template error")
	ErrorRender     = errors.New("render error")
	ErrorEncryption = errors.New("encryption error")
)

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
