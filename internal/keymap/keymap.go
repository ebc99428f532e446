// Package keymap derives hidutil UserKeyMapping tables from declarative swap rules.
package keymap

import "fmt"

// SwapRule exchanges two HID usages: pressing A emits B and pressing B emits A.
type SwapRule struct {
	A uint64
	B uint64
}

// Swap is shorthand for SwapRule{A: a, B: b}.
func Swap(a, b uint64) SwapRule {
	return SwapRule{A: a, B: b}
}

func (r SwapRule) String() string {
	return fmt.Sprintf("0x%x<->0x%x", r.A, r.B)
}

// MappingEntry is a single directed src->dst remap as understood by the host.
type MappingEntry struct {
	Src uint64
	Dst uint64
}

func (e MappingEntry) String() string {
	return fmt.Sprintf("0x%x->0x%x", e.Src, e.Dst)
}

// MappingTable is the complete ordered set of entries installed on the host.
type MappingTable []MappingEntry

// Build expands every rule into its two directed entries, a->b followed by b->a,
// preserving rule order.
func Build(rules []SwapRule) MappingTable {
	table := make(MappingTable, 0, 2*len(rules))
	for _, r := range rules {
		table = append(table,
			MappingEntry{Src: r.A, Dst: r.B},
			MappingEntry{Src: r.B, Dst: r.A},
		)
	}
	return table
}
