// Package speech turns text into pronunciation audio with Gemini or OpenAI
// text-to-speech and plays it through the system audio player.
package speech
