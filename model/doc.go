// Package model defines the minimal LLM client abstraction consumed by the
// model-backed strategies (intent resolution, reference resolution,
// continuation decisions). Concrete provider adapters live in sub-packages
// (openai, anthropic); MockModel supports tests and offline development.
package model
