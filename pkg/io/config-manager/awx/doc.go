// Package configmanager loads the awxctl configuration from defaults, an
// optional awxctl.yaml file, AWXCTL_ environment variables and bound flags,
// in increasing order of precedence.
package configmanager
