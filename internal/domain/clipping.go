package domain

import "strings"

// Clipping is one press clipping entry.
//
// A Clipping is immutable once created: there is no edit or delete
// operation, only whole-collection replacement at the store.
type Clipping struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is unique within the collection.
	// New records get max(existing ids) + 1.
	ID int `json:"id"`

	// ─────────────────────────────
	// Description
	// ─────────────────────────────

	// Title is required and non-empty.
	Title string `json:"title"`

	// Date is the publication date of the clipping.
	Date Date `json:"date"`

	// Category should be one of the configured categories,
	// but the store does not enforce it.
	Category string `json:"category"`

	// Description is optional on input and defaulted on creation.
	Description string `json:"description"`

	// ─────────────────────────────
	// Locator
	// ─────────────────────────────

	// URL points to the stored PDF, e.g. http://host/data/1714521600000_report.pdf
	URL string `json:"url"`
}

// Filename extracts the stored file name from the record URL
// when it points into the /data/ upload area.
func (c Clipping) Filename() string {
	idx := strings.LastIndex(c.URL, "/data/")
	if idx < 0 {
		return ""
	}
	return c.URL[idx+len("/data/"):]
}

// Collection is an ordered sequence of clippings, most recent first by convention.
type Collection []Clipping

// MaxID returns the highest id in the collection, 0 when empty.
func (c Collection) MaxID() int {
	maxID := 0
	for _, item := range c {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID
}

// NextID returns the id for a new record.
func (c Collection) NextID() int {
	return c.MaxID() + 1
}

// Find returns the clipping with the given id.
func (c Collection) Find(id int) (Clipping, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return Clipping{}, false
}

// Prepend returns a new collection with item first. The receiver is not modified.
func (c Collection) Prepend(item Clipping) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, item)
	out = append(out, c...)
	return out
}

// Clone returns a shallow copy safe to hand out to readers.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// HasUniqueIDs reports whether no two records share an id.
func (c Collection) HasUniqueIDs() bool {
	seen := make(map[int]struct{}, len(c))
	for _, item := range c {
		if _, dup := seen[item.ID]; dup {
			return false
		}
		seen[item.ID] = struct{}{}
	}
	return true
}
