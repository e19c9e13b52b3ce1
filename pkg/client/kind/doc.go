// Package kind drives the kind CLI and translates its output into exact tokens.
package kind
