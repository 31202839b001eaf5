package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func DereferencePtr[T any](ptr *T, def T) T {
	if ptr == nil {
		return def
	}
	return *ptr
}

func NewTrue() *bool {
	b := true
	return &b
}
