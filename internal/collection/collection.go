// Package collection holds romaneio item collections as immutable values.
//
// Every operation returns a new Collection and leaves its receiver untouched,
// so a snapshot handed to the aggregator (or to several views at once) never
// changes underneath it.
package collection

import (
	"errors"
	"fmt"

	"github.com/mmynk/logflow/internal/calculator"
	"github.com/mmynk/logflow/internal/models"
)

// ErrItemNotFound is returned when an operation names an unknown item ID.
var ErrItemNotFound = errors.New("item not found")

// Collection is an ordered, immutable sequence of items.
// The zero value is an empty collection.
type Collection struct {
	items []models.Item
}

// New creates a collection from items, copying them.
func New(items ...models.Item) Collection {
	return Collection{items: cloneItems(items)}
}

// Len returns the number of items.
func (c Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of the items in display order.
func (c Collection) Items() []models.Item {
	return cloneItems(c.items)
}

// Get returns the item with the given ID.
func (c Collection) Get(id string) (models.Item, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Item{}, false
	}
	return c.items[i].Clone(), true
}

// Totals computes the aggregate totals of the collection.
func (c Collection) Totals() calculator.Totals {
	return calculator.ComputeTotals(c.items)
}

// Add appends item with a freshly assigned ID and returns the new collection
// together with the stored item.
func (c Collection) Add(ids IDProvider, item models.Item) (Collection, models.Item) {
	item = item.Clone()
	item.ID = ids.NewID()

	next := make([]models.Item, len(c.items), len(c.items)+1)
	copy(next, c.items)
	return Collection{items: append(next, item)}, item.Clone()
}

// Import appends a batch of already-parsed items, assigning each a new ID.
// Items are appended in the given order after the existing ones.
func (c Collection) Import(ids IDProvider, items []models.Item) Collection {
	next := make([]models.Item, len(c.items), len(c.items)+len(items))
	copy(next, c.items)
	for _, item := range items {
		item = item.Clone()
		item.ID = ids.NewID()
		next = append(next, item)
	}
	return Collection{items: next}
}

// Replace swaps the item carrying item.ID for item, keeping its position.
// The cleaned flag of the stored item is preserved, matching the dashboard's
// edit dialog which never exposes it.
func (c Collection) Replace(item models.Item) (Collection, error) {
	i := c.indexOf(item.ID)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	updated := item.Clone()
	updated.IsCleaned = c.items[i].IsCleaned

	next := cloneItems(c.items)
	next[i] = updated
	return Collection{items: next}, nil
}

// Remove drops the item with the given ID.
func (c Collection) Remove(id string) (Collection, error) {
	i := c.indexOf(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := make([]models.Item, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Collection{items: cloneItems(next)}, nil
}

// ToggleVerified flips the verified flag of one item.
func (c Collection) ToggleVerified(id string) (Collection, error) {
	i := c.indexOf(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := cloneItems(c.items)
	next[i].IsVerified = !next[i].IsVerified
	return Collection{items: next}, nil
}

func (c Collection) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.Item) []models.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
