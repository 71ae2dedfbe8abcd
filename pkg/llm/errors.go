package llm

import "errors"

var (
	// ErrMissingAPIKey is returned by a provider constructor when no
	// credential was supplied.
	ErrMissingAPIKey = errors.New("llm: missing api key")

	// ErrEmptyResponse names a vendor reply that carries neither text nor
	// tool calls. The providers in this package do not return it: such a
	// reply comes back as an empty GenerateResponse with a nil error.
	ErrEmptyResponse = errors.New("llm: empty response from provider")

	// ErrUnknownProvider is returned by the factory for a provider name it
	// does not recognize.
	ErrUnknownProvider = errors.New("llm: unknown provider")

	// ErrProviderHTTPError wraps a transport or API-level error surfaced by
	// a vendor SDK call.
	ErrProviderHTTPError = errors.New("llm: provider request failed")
)
