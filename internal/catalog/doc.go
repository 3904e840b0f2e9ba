// Package catalog stores workaround definitions as JSON files.
//
// Layout:
//
//	<root>/default.json                  factory-default template
//	<root>/<runner>-<appID>/<name>.json  per-application definitions
//
// Loading merges the stored file over a fresh factory default, so a field
// missing from the file inherits the default value. When the per-application
// file is absent, the root template is merged instead; such a definition is
// flagged as coming from the template and must never be marked executed.
//
// The catalog performs no locking. Concurrent writers to the same file
// (an execution marking it executed while a sync replaces it) are not
// coordinated.
package catalog
