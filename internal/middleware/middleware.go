// Package middleware holds the checks and handler middleware shared by gears.
// Checks gate a command before its arguments are bound; middleware wraps the
// handler call itself.
package middleware
