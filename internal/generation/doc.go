// Package generation defines the boundary between the tracker and external
// LLM services. The analysis package depends on TextGenerator; the Gemini
// implementation lives in internal/platform/gemini.
package generation
