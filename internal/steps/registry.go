package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// RegistryCommand is a single `reg add` invocation.
type RegistryCommand struct {
	Key    string
	Name   string
	Type   definition.RegType
	Value  string
	Arch64 bool
}

// SetsValue reports whether the command writes a value rather than only
// creating the key.
func (c RegistryCommand) SetsValue() bool {
	return c.Name != "" && c.Type != "" && c.Value != ""
}

// Args returns the command as an argument vector, without the layer binary.
func (c RegistryCommand) Args() []string {
	args := []string{"reg", "add", c.Key, "/f"}
	if c.SetsValue() {
		args = append(args, "/v", c.Name, "/t", string(c.Type), "/d", c.Value)
	}
	if c.Arch64 {
		args = append(args, "/reg:64")
	}
	return args
}

// String renders the command as a single shell line.
func (c RegistryCommand) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "reg add '%s' /f", c.Key)
	if c.SetsValue() {
		fmt.Fprintf(&b, " /v '%s' /t '%s'", c.Name, c.Type)
		if c.Arch64 {
			fmt.Fprintf(&b, ` /d "%s"`, c.Value)
		} else {
			fmt.Fprintf(&b, " /d '%s'", c.Value)
		}
	}
	if c.Arch64 {
		b.WriteString(" /reg:64")
	}
	return b.String()
}

// BuildRegistryCommand resolves edit against target in registry mode.
func BuildRegistryCommand(edit definition.RegEdit, target symbolic.Target) RegistryCommand {
	cmd := RegistryCommand{
		Key:    edit.Folder,
		Name:   edit.Name,
		Type:   edit.Type,
		Arch64: edit.Arch,
	}
	if edit.Value != "" {
		cmd.Value = symbolic.Resolve(edit.Value, target, true)
	}
	return cmd
}

// RegistryAdd applies one regedit entry through r.
func RegistryAdd(ctx context.Context, r RegistryRunner, appID string, runner definition.Runner, edit definition.RegEdit, target symbolic.Target) error {
	cmd := BuildRegistryCommand(edit, target)
	if err := r.RunRegistryCommand(ctx, appID, runner, cmd); err != nil {
		return fmt.Errorf("reg add %s: %w", cmd.Key, err)
	}
	return nil
}
