// Package models lists the OpenAI models usable for translation and
// pronunciation with the configured API key.
package models
