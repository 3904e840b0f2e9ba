// Package engine applies workaround definitions to an application.
//
// Execute loads a definition from the catalog and, unless it has already
// run (and force is not set), performs its steps strictly in this order:
//
//  1. regedit entries, in list order, through the registry runner
//  2. winetricks verbs, one at a time
//  3. delete_file entries; a failed deletion is logged and skipped
//  4. copy_file entries; a failed copy aborts the execution
//  5. overlay install and enable (eos_enable)
//  6. anti-cheat runtime downloads (eac_enable, battleye_enable)
//  7. graphics shim toggles
//
// Each step finishes before the next starts, so a step observes the state
// left by the one before it. After the last step the executed flag is
// written back to the definition file, except for the runner template,
// which is never marked executed.
//
// Every call is optionally recorded in the execution journal. The journal
// is history only; idempotency comes from the definition's executed flag.
//
// Launch is the read-only counterpart used when starting the application:
// it returns the resolved launch overrides of a definition.
package engine
