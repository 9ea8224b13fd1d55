// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package pointers

// IntPtr returns a pointer to the int passed as parameter
func IntPtr(i int) *int {
	return &i
}

// SafeInt returns the value from ptr or 0 if the pointer is nil
func SafeInt(ptr *int) int {
	if ptr != nil {
		return *ptr
	}
	return 0
}

// StringPtr returns a pointer to the string passed as parameter
func StringPtr(str string) *string {
	return &str
}

// SafeString returns the value from ptr or "" if the pointer is nil
func SafeString(ptr *string) string {
	if ptr != nil {
		return *ptr
	}
	return ""
}

// CloneInt returns a new pointer holding the same value, or nil
func CloneInt(ptr *int) *int {
	if ptr == nil {
		return nil
	}
	return IntPtr(*ptr)
}

// CloneString returns a new pointer holding the same value, or nil
func CloneString(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	return StringPtr(*ptr)
}
