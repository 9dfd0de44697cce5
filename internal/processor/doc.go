// Package processor contains the core business logic behind the persianpro
// commands. It opens the database, builds the translation and speech
// services from the flags and runs each command against them, either in the
// terminal or by launching the GUI. This package serves as the main
// coordinator between all other components.
package processor
