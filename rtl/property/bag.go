package property

// Bag is an ordered property bag: it allows duplicate names and preserves
// insertion order, used interchangeably with a Map-shaped Property at RPC
// boundaries depending on the service (spec §3.2).
type Bag []Property

// ByName returns the first property in the bag with the given name.
func (b Bag) ByName(name string) (Property, bool) {
	for _, p := range b {
		if p.Name() == name {
			return p, true
		}
	}
	return Property{}, false
}

// ToMap collapses the bag into a map-shaped Property, last-write-wins on
// duplicate names.
func (b Bag) ToMap(name string) Property {
	m := make(map[string]Property, len(b))
	for _, p := range b {
		m[p.Name()] = p
	}
	return NewMap(name, m)
}
