package httpclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecureString_MasksEveryRenderingPath(t *testing.T) {
	s := NewSecureString("hunter2")

	if got := s.String(); got != "***REDACTED***" {
		t.Errorf("String() = %q", got)
	}
	if got := fmt.Sprintf("%v", s); strings.Contains(got, "hunter2") {
		t.Errorf("%%v leaked the value: %q", got)
	}
	if got := fmt.Sprintf("%#v", s); strings.Contains(got, "hunter2") {
		t.Errorf("%%#v leaked the value: %q", got)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(b), "hunter2") {
		t.Errorf("JSON leaked the value: %s", b)
	}
}

func TestSecureString_ValueAndEmpty(t *testing.T) {
	s := NewSecureString("tok")
	if s.Value() != "tok" {
		t.Errorf("Value() = %q", s.Value())
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty value")
	}

	var zero SecureString
	if !zero.IsEmpty() {
		t.Error("IsEmpty() = false for zero value")
	}
	if zero.String() != "" {
		t.Errorf("empty String() = %q, want empty", zero.String())
	}
}

func TestSecureString_UnmarshalAcceptsPlainString(t *testing.T) {
	var s SecureString
	if err := json.Unmarshal([]byte(`"api-key-1"`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Value() != "api-key-1" {
		t.Errorf("Value() = %q after unmarshal", s.Value())
	}
}

func TestSecureString_ConfigRoundTripMasksCredentials(t *testing.T) {
	cfg := &ClientConfig{
		Name:     "api",
		AuthType: AuthTypeBearer,
		Token:    NewSecureString("secret-token"),
	}

	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(b), "secret-token") {
		t.Errorf("serialized ClientConfig leaked the token: %s", b)
	}
}
