// Package config loads the workarounds configuration.
//
// The file format follows the extension: .yaml and .yml are YAML, .cue and
// .json are CUE (JSON being a subset). A .env file next to the config file
// supplies environment values that the process environment does not set.
// WORKAROUNDS_* variables override the file; unset fields take defaults.
package config
