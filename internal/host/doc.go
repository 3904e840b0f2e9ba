// Package host implements the engine's collaborators on the local machine.
//
// Targets come from the configured applications. Registry edits run through
// the application's compatibility layer binary; winetricks, shim, overlay
// and runtime helpers run as the commands configured under tools, with the
// operation's arguments appended.
//
// Every process is started through a CommandRunner, so tests substitute a
// fake and never spawn anything.
package host
