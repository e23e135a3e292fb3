// Package cli implements the wretchkit command line.
//
// Commands register themselves on the root command from init functions.
// Every command honors the persistent --json flag: when it is set, only the
// JSON encoding of the result is written to stdout.
package cli
