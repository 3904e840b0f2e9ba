// Package definition provides the workaround definition model shared by the
// catalog, the engine and the sync manager.
//
// This package contains types and pure helpers only. It imports nothing
// internal, so every other package can depend on it.
//
// Key constraints:
//   - Executed is the only field the engine mutates after a definition is read
//   - List-typed fields are ordered; position is application order
//   - All JSON tags use snake_case and match the on-disk catalog format
//   - Comparisons between catalog files go through canonical JSON
package definition
