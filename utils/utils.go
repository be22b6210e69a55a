// Package utils holds small generic helpers shared across packages.
package utils

import "fmt"

func Ptr[T any](v T) *T {
	return &v
}

// Format renders a possibly-nil pointer for display, "" when nil.
func Format[T any](ptr *T) string {
	if ptr == nil {
		return ""
	}
	return fmt.Sprintf("%v", *ptr)
}

func FormatBoolean(yesno bool, yes string, no string) string {
	if yesno {
		return yes
	}
	return no
}
