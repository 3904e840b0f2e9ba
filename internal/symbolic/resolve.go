// Package symbolic resolves {TOKEN} path expressions used by workaround
// definitions into concrete paths.
//
// Two addressing modes exist. Native mode produces host filesystem paths.
// Registry mode produces paths as seen from inside the compatibility layer,
// for values written by registry commands.
//
// Unrecognized tokens and strings without braces are returned unchanged.
// Callers treat such a result as unresolved; it is not an error here.
package symbolic

import "strings"

// Tokens understood by Resolve.
const (
	TokenGameDir = "GAMEDIR"
	TokenWineDir = "WINEDIR"
)

// LayerWine is the compatibility layer kind that translates natively and
// whose graphics shims are managed by the engine.
const LayerWine = "wine"

// Target is the per-application context paths are resolved against.
type Target struct {
	// InstallPath is the application's install root.
	InstallPath string
	// PrefixPath is the compatibility prefix root.
	PrefixPath string
	// LayerKind is the compatibility layer kind, e.g. "wine" or "proton".
	LayerKind string
	// LayerBin is the compatibility layer binary.
	LayerBin string
	// LayerVersion names the compatibility layer build, passed to verb runners.
	LayerVersion string
}

// Resolve maps path to a concrete path against t.
// registry selects compatibility-layer addressing.
func Resolve(path string, t Target, registry bool) string {
	root, rest, ok := split(path)
	if !ok {
		return path
	}

	if !registry {
		switch root {
		case TokenGameDir:
			return t.InstallPath + rest
		case TokenWineDir:
			return t.PrefixPath + rest
		default:
			return path
		}
	}

	switch root {
	case TokenGameDir:
		// Separators in rest are converted along with the install path.
		return "z:" + strings.ReplaceAll(t.InstallPath+rest, "/", `\`)
	case TokenWineDir:
		return "c:" + rest
	default:
		return path
	}
}

// IsResolved reports whether path carries no {TOKEN} prefix, so a path
// returned by Resolve is resolved unless its token was unknown.
func IsResolved(path string) bool {
	_, _, ok := split(path)
	return !ok
}

// split returns the token between the first '{' and the first '}' after it,
// and everything after that '}'.
func split(path string) (root, rest string, ok bool) {
	open := strings.IndexByte(path, '{')
	if open < 0 {
		return "", "", false
	}
	end := strings.IndexByte(path[open:], '}')
	if end < 0 {
		return "", "", false
	}
	end += open
	return path[open+1 : end], path[end+1:], true
}
