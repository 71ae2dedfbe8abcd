package security

import "errors"

// Sentinel errors for URL validation failures. ValidateURL wraps these so
// callers can distinguish policy classes with errors.Is.
var (
	ErrURLNotAllowed    = errors.New("URL not allowed by security policy")
	ErrInvalidProtocol  = errors.New("invalid or disallowed protocol")
	ErrLocalhostBlocked = errors.New("access to localhost blocked")
	ErrPrivateIPBlocked = errors.New("access to private IP blocked")
	ErrLinkLocalBlocked = errors.New("access to link-local address blocked")
	ErrMetadataBlocked  = errors.New("access to cloud metadata blocked")
)
