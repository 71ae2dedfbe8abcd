package llm

import (
	"encoding/json"
	"fmt"
)

// decodeToolArgs parses an OpenAI tool call's JSON-encoded arguments string
// into a map. A malformed payload yields the raw string under "_raw" rather
// than failing the whole response.
func decodeToolArgs(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]interface{}{"_raw": raw}
	}
	return m
}

// encodeToolArgs is decodeToolArgs's inverse, used when a tool-calling
// assistant turn is replayed back to the vendor.
func encodeToolArgs(input map[string]interface{}) string {
	if len(input) == 0 {
		return "{}"
	}
	b, err := json.Marshal(input)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Credentials supplies the API keys a Factory needs to build a Provider.
type Credentials struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
}

// Factory resolves a {provider, model} choice to a concrete Provider,
// constructing and caching backends lazily as they're first requested.
type Factory struct {
	creds          Credentials
	defaultModel   string
	fallbackVendor string
	cache          map[string]Provider
}

// NewFactory builds a Factory. fallbackVendor and defaultModel are used
// when Resolve cannot build the requested provider, whether the name is not
// recognized or the backend fails to build.
func NewFactory(creds Credentials, fallbackVendor, defaultModel string) *Factory {
	if fallbackVendor == "" {
		fallbackVendor = "openai"
	}
	return &Factory{
		creds:          creds,
		defaultModel:   defaultModel,
		fallbackVendor: fallbackVendor,
		cache:          make(map[string]Provider),
	}
}

// Resolve returns the Provider for the given vendor name, falling back to
// the factory's configured fallback vendor when the name is not recognized
// or its backend cannot be built (for example, a missing API key). The
// fallback is silent: nothing is logged and the caller cannot tell it
// happened.
func (f *Factory) Resolve(vendor, model string) (Provider, error) {
	key := vendor
	if p, ok := f.cache[key]; ok {
		return p, nil
	}

	p, err := f.build(vendor, model)
	if err != nil {
		if vendor == f.fallbackVendor {
			return nil, err
		}
		// Unknown or unbuildable vendor: fall back rather than fail the
		// whole task.
		p, err = f.build(f.fallbackVendor, f.defaultModel)
		if err != nil {
			return nil, err
		}
	}
	f.cache[key] = p
	return p, nil
}

func (f *Factory) build(vendor, model string) (Provider, error) {
	switch vendor {
	case "anthropic":
		return NewAnthropicProvider(f.creds.AnthropicAPIKey, model)
	case "openai":
		return NewOpenAIProvider(f.creds.OpenAIAPIKey, model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, vendor)
	}
}
