// Package grocery derives shopping-list mutations from per-recipe ingredient
// checklist toggles and keeps the persisted list consistent with them.
package grocery

import (
	"strings"
	"time"
)

// Item is one shopping-list entry. Items created from a checklist toggle
// carry the recipe they came from; (Name, FromRecipe) is the reconciliation
// key, so one recipe can never contribute the same ingredient twice.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	AddedDate  time.Time `json:"addedDate"`
	FromRecipe string    `json:"fromRecipe"`
	Completed  bool      `json:"completed"`
}

func (i Item) matchesKey(name, fromRecipe string) bool {
	return strings.EqualFold(i.Name, name) && i.FromRecipe == fromRecipe
}

// List is the persisted grocery list.
type List []Item

// Apply applies a reconciliation mutation and returns the updated list.
// Upserts are last-write-wins on the (name, fromRecipe) key; removes drop
// every matching entry, case-insensitive on name.
func (l List) Apply(m Mutation) List {
	switch m.Kind {
	case MutationUpsert:
		if m.Item == nil {
			return l
		}
		out := l.dropKey(m.Item.Name, m.Item.FromRecipe)
		return append(out, *m.Item)
	case MutationRemove:
		return l.dropKey(m.Name, m.FromRecipe)
	default:
		return l
	}
}

// SetCompleted marks an entry checked off or not, reporting whether the id
// was found.
func (l List) SetCompleted(id string, completed bool) (List, bool) {
	for i := range l {
		if l[i].ID == id {
			l[i].Completed = completed
			return l, true
		}
	}
	return l, false
}

// Remove deletes an entry by identity, reporting whether the id was found.
func (l List) Remove(id string) (List, bool) {
	for i := range l {
		if l[i].ID == id {
			return append(l[:i:i], l[i+1:]...), true
		}
	}
	return l, false
}

func (l List) dropKey(name, fromRecipe string) List {
	out := make(List, 0, len(l))
	for _, item := range l {
		if !item.matchesKey(name, fromRecipe) {
			out = append(out, item)
		}
	}
	return out
}
