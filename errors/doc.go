// Package errors provides standardized error handling for the knowledge
// explorer. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping across the module.
//
// All failures inside the explorer are handled locally and reported through
// the configured logger; classified errors exist so callers can decide
// whether a condition is user input (invalid), a missing capability (fatal
// for the session), or something the transport may recover from (transient).
package errors
