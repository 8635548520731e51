package leftover

import "strings"

// MatchesTag reports whether an inventory name and a recipe leftover tag
// refer to the same thing. The match is a case-insensitive substring test in
// both directions: "chicken breast" matches the tag "chicken" and vice versa.
// Intentionally permissive so imprecise leftover names still count.
func MatchesTag(name, tag string) bool {
	n := strings.ToLower(name)
	t := strings.ToLower(tag)
	return strings.Contains(n, t) || strings.Contains(t, n)
}

func matchesAny(name string, tags []string) bool {
	for _, tag := range tags {
		if MatchesTag(name, tag) {
			return true
		}
	}
	return false
}

// MatchForConsumption returns the subset of items that would be retired if a
// recipe declaring the given leftover tags is cooked. A recipe with no tags
// never consumes inventory. The inventory itself is not modified.
func MatchForConsumption(tags []string, items []Item) []Item {
	if len(tags) == 0 {
		return nil
	}
	var matched []Item
	for _, item := range items {
		if matchesAny(item.Name, tags) {
			matched = append(matched, item)
		}
	}
	return matched
}
