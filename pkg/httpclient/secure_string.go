package httpclient

import (
	"encoding/json"
	"fmt"
)

// SecureString holds a credential (password, bearer token, API key) so that
// every accidental rendering path — fmt verbs, log fields, JSON encoding —
// shows a mask instead of the value. The value only leaves through Value(),
// which the auth transport calls at request time.
type SecureString struct {
	value string
}

// NewSecureString wraps a plain credential value.
func NewSecureString(value string) SecureString {
	return SecureString{value: value}
}

// Value returns the underlying credential.
func (s SecureString) Value() string { return s.value }

// IsEmpty reports whether no credential is set.
func (s SecureString) IsEmpty() bool { return s.value == "" }

// String implements fmt.Stringer with a mask.
func (s SecureString) String() string {
	if s.value == "" {
		return ""
	}
	return "***REDACTED***"
}

// GoString masks the value under %#v as well.
func (s SecureString) GoString() string {
	return fmt.Sprintf("SecureString{value:%q}", s.String())
}

// MarshalJSON emits the mask, never the value.
func (s SecureString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a plain string credential.
func (s *SecureString) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.value)
}
