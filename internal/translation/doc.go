// Package translation translates text and produces a short definition using
// a generative model (Gemini, OpenAI or a local Ollama server).
//
// Service hides provider errors behind the Failed sentinel so the UI always
// has something to render, and Live debounces keystrokes and drops results
// for input that has since changed.
package translation
