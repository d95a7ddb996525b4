// Package engine holds ambient runtime facilities shared by the
// interpreter core and the REPL front-end — currently just the
// zap-backed logger toggled by cmd/repl's -debug flag.
package engine
