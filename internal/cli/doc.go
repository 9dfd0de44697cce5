// Package cli provides command-line interface setup and configuration
// for the persianpro application. It handles flag parsing, the command
// tree and configuration management using cobra, viper and godotenv.
package cli
