// Package syncer refreshes the local workaround catalog from a remote
// archive of community definitions.
//
// UpdateAll runs five phases, each aborting the rest on failure:
//
//	prepare  create the catalog root and a clean staging directory
//	fetch    stream the archive into staging
//	extract  unpack *.json entries, stripping the archive's top folder
//	compare  copy new files in, replace files whose content differs
//	cleanup  remove the staging directory
//
// Cleanup runs whenever prepare succeeded, including after a failure in a
// later phase.
//
// Content is compared with the executed flag removed from both sides. A
// local file whose remaining content matches keeps its executed flag; a
// file that differs is replaced verbatim, executed flag included.
package syncer
