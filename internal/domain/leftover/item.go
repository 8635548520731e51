package leftover

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single leftover entry. Name is lowercase and normalized by the
// parser before it gets here.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AddedDate time.Time `json:"addedDate"`
}

// NewItem creates a leftover item with a fresh identifier.
func NewItem(name string, addedAt time.Time) Item {
	return Item{
		ID:        uuid.NewString(),
		Name:      Canonicalize(name),
		AddedDate: addedAt,
	}
}

// Inventory is the ordered collection of leftover items. Duplicate names are
// allowed: adding "rice" twice yields two independent entries.
type Inventory struct {
	items []Item
}

// NewInventory wraps a persisted item list.
func NewInventory(items []Item) *Inventory {
	return &Inventory{items: items}
}

// Items returns a copy of the current entries.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of entries.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Add appends one entry per name, each with its own identifier and timestamp,
// and returns the created items. No dedup against existing entries.
func (inv *Inventory) Add(names []string, addedAt time.Time) []Item {
	added := make([]Item, 0, len(names))
	for _, name := range names {
		item := NewItem(name, addedAt)
		inv.items = append(inv.items, item)
		added = append(added, item)
	}
	return added
}

// Remove deletes an entry by identity. It reports whether anything was
// removed.
func (inv *Inventory) Remove(id string) bool {
	for i, item := range inv.items {
		if item.ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Consume removes every entry matched by any of the given tags under the
// bidirectional substring rule and returns the removed items in order.
func (inv *Inventory) Consume(tags []string) []Item {
	if len(tags) == 0 {
		return nil
	}
	var consumed []Item
	kept := inv.items[:0]
	for _, item := range inv.items {
		if matchesAny(item.Name, tags) {
			consumed = append(consumed, item)
		} else {
			kept = append(kept, item)
		}
	}
	inv.items = kept
	return consumed
}
