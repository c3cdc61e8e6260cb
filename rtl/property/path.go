package property

import "strings"

// FindByPath descends root one dotted-path segment at a time. At each step
// the current node must be a Map or Vector (Vector elements are matched by
// name within the current level, mirroring Map lookup); if a segment names
// no child, or the current node isn't a container, it returns (Property{},
// false). An optional kind filter rejects matches whose Kind differs.
func FindByPath(root Property, path string, want ...Kind) (Property, bool) {
	segments := strings.Split(path, ".")
	cur := root
	for _, seg := range segments {
		next, ok := childByName(cur, seg)
		if !ok {
			return Property{}, false
		}
		cur = next
	}
	if len(want) > 0 && cur.Kind() != want[0] {
		return Property{}, false
	}
	return cur, true
}

func childByName(cur Property, name string) (Property, bool) {
	switch cur.Kind() {
	case Map:
		v, ok := cur.mp[name]
		return v, ok
	case Vector:
		for _, v := range cur.vec {
			if v.Name() == name {
				return v, true
			}
		}
		return Property{}, false
	default:
		return Property{}, false
	}
}
