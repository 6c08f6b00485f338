// Package providers implements the Analyzer interface for each supported LLM
// provider.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini), and
// Ollama / LM Studio for local models. The Gemini provider uses the official
// google.golang.org/genai SDK; the others speak their HTTP APIs directly.
//
// All providers share a common retry helper with exponential back-off that
// retries rate-limit and server errors but fails fast on authentication
// errors. HTTP clients carry an injectable transport so that tests can
// redirect calls to local httptest servers without making live API requests.
//
// Use [New] to obtain an Analyzer by provider name and model string.
package providers
