// Package di wires awxctl's services together with samber/do.
//
// A Runtime holds the modules that register providers. Command handlers run
// through Runtime.Invoke, which builds a fresh injector, applies the base
// modules followed by any per-call modules, and hands the injector to the
// handler. Tests replace a service by passing a module that provides it again.
package di
