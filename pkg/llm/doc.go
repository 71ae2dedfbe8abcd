// Package llm provides a vendor-neutral chat/tool-call interface used by
// the LLMChat node, the multimedia nodes, the agent runtime and the
// Executor Dispatcher's classifier.
//
// Provider is the seam: AnthropicProvider and OpenAIProvider are the two
// concrete back-ends, selected at runtime by Factory.Resolve from a
// types.LLMChoice. RunToolLoop drives the bounded generate/tool-call cycle
// shared by every caller that lets the model invoke tools mid-turn.
package llm
