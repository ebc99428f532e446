package keymap

// MappingTier is a named group of swap rules. Conditional tiers only apply
// while the target keyboard is present.
type MappingTier struct {
	Name        string
	Rules       []SwapRule
	Conditional bool
}

// Policy is the ordered list of tiers making up a mapping table.
type Policy []MappingTier

// Table builds the table for the given presence state. Tiers are concatenated
// in declaration order; conditional tiers are skipped when present is false.
func (p Policy) Table(present bool) MappingTable {
	table := MappingTable{}
	for _, tier := range p {
		if tier.Conditional && !present {
			continue
		}
		table = append(table, Build(tier.Rules)...)
	}
	return table
}

// Tier returns the tier with the given name, if any.
func (p Policy) Tier(name string) (MappingTier, bool) {
	for _, tier := range p {
		if tier.Name == name {
			return tier, true
		}
	}
	return MappingTier{}, false
}
