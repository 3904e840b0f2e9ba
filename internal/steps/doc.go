// Package steps implements the individual workaround step executors and the
// host collaborator interfaces they delegate to.
//
// Executors are stateless. Each resolves the symbolic paths it needs against
// a symbolic.Target and either touches the filesystem directly (copy, delete)
// or hands a fully resolved request to a collaborator (registry commands,
// verbs, shims, overlay, runtimes). Failure policy (which errors are
// swallowed) belongs to the engine, not to the executors.
package steps
