// Package hidutil installs key remapping tables through macOS hidutil.
package hidutil

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Alia5/autoremap/internal/execx"
	"github.com/Alia5/autoremap/internal/keymap"
)

const (
	hidutil        = "hidutil"
	userKeyMapping = "UserKeyMapping"
)

// ApplyError means the mapping table could not be installed.
type ApplyError struct {
	Entries int
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %d mapping entries: %v", e.Entries, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

type property struct {
	UserKeyMapping []entry `json:"UserKeyMapping"`
}

type entry struct {
	Src uint64 `json:"HIDKeyboardModifierMappingSrc"`
	Dst uint64 `json:"HIDKeyboardModifierMappingDst"`
}

// Encode serializes a table into the compact property object hidutil expects.
func Encode(table keymap.MappingTable) ([]byte, error) {
	p := property{UserKeyMapping: make([]entry, 0, len(table))}
	for _, e := range table {
		p.UserKeyMapping = append(p.UserKeyMapping, entry{Src: e.Src, Dst: e.Dst})
	}
	return json.Marshal(p)
}

// Applier replaces the host's active UserKeyMapping.
type Applier struct {
	Runner execx.Runner
}

func NewApplier(r execx.Runner) *Applier {
	return &Applier{Runner: r}
}

// Apply installs table as the complete UserKeyMapping with a single hidutil call.
func (a *Applier) Apply(ctx context.Context, table keymap.MappingTable) error {
	payload, err := Encode(table)
	if err != nil {
		return &ApplyError{Entries: len(table), Err: err}
	}
	if _, err := a.Runner.Run(ctx, hidutil, "property", "--set", string(payload)); err != nil {
		return &ApplyError{Entries: len(table), Err: err}
	}
	return nil
}

// Reset removes every user key mapping.
func (a *Applier) Reset(ctx context.Context) error {
	return a.Apply(ctx, keymap.MappingTable{})
}

// Current reads the active UserKeyMapping back from the host.
func (a *Applier) Current(ctx context.Context) (keymap.MappingTable, error) {
	out, err := a.Runner.Run(ctx, hidutil, "property", "--get", userKeyMapping)
	if err != nil {
		return nil, err
	}
	return ParseProperty(out)
}

var (
	entryBlock = regexp.MustCompile(`\{([^{}]*)\}`)
	entryField = regexp.MustCompile(`HIDKeyboardModifierMapping(Src|Dst)\s*=\s*(\d+)\s*;`)
)

// ParseProperty parses the old-style property list printed by
// `hidutil property --get UserKeyMapping`. "(null)" yields an empty table.
func ParseProperty(out []byte) (keymap.MappingTable, error) {
	table := keymap.MappingTable{}
	for _, block := range entryBlock.FindAllSubmatch(out, -1) {
		var e keymap.MappingEntry
		seen := 0
		for _, field := range entryField.FindAllSubmatch(block[1], -1) {
			v, err := strconv.ParseUint(string(field[2]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s value %q: %w", userKeyMapping, field[2], err)
			}
			if string(field[1]) == "Src" {
				e.Src = v
			} else {
				e.Dst = v
			}
			seen++
		}
		if seen != 2 {
			return nil, fmt.Errorf("parse %s: incomplete entry %q", userKeyMapping, block[0])
		}
		table = append(table, e)
	}
	return table, nil
}
