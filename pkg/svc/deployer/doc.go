// Package deployer installs the AWX operator chart and applies the AWX
// instance manifest, and removes both again.
package deployer
