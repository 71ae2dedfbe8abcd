// Package config centralizes execution limits, zero-trust network flags,
// and LLM defaults shared by the orchestrator, workflow runtime, agent
// runtime, and the security/httpclient packages.
//
// Default returns secure, production-ready defaults (all network access
// denied unless explicitly allowed); Development, Production and Testing
// each start from Default and flip a handful of fields for that
// environment, mirroring the way callers are expected to build their own
// presets.
package config
