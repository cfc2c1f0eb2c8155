// Package intent contains IntentResolver implementations: a deterministic
// rule-based resolver suited to tests and offline use, and a model-backed
// resolver that asks an LLM to pick a capability and arguments from the
// registry's candidate set. The contract lives in core.IntentResolver.
package intent
