// Package utils provides utility packages for common operations.
//
//   - notify: formatted message display with symbols and colors
package utils
