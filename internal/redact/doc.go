// Package redact strips secrets from diff and file content before any of it
// is sent to an LLM provider.
//
// Detection is regex-heuristic: API key assignments, JWTs, private key
// blocks, AWS credentials, bearer tokens, and provider-specific token shapes
// (Anthropic, OpenAI, GitHub, Slack).
//
// Path-based redaction replaces the entire content of files whose paths
// match configured glob patterns (doublestar syntax, same as ignore_paths)
// instead of scanning them.
package redact
