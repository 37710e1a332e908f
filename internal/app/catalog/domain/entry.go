package domain

import (
	"net/url"
	"time"
)

// Field names for change tracking.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImages      = "images"
	FieldCategory    = "category"
	FieldStore       = "store"
	FieldLink        = "link"
)

// Entry is the aggregate root for a catalog entry. It owns input validation
// and event recording; persistence and media upload stay in collaborators.
type Entry struct {
	id          string
	name        string
	description string
	price       *Money
	images      []string
	category    string
	store       string
	link        string
	createdAt   time.Time
	updatedAt   time.Time

	changes *ChangeTracker
	events  []Event
}

// ValidateEntryInput checks the field constraints shared by create and
// update. It runs before any storage or media call; the returned
// ValidationError names the offending field.
func ValidateEntryInput(name string, price *Money, category, store, link string) error {
	if name == "" {
		return NewValidationError(FieldName, "must not be empty")
	}
	if price == nil {
		return NewValidationError(FieldPrice, "is required")
	}
	if price.IsNegative() {
		return NewValidationError(FieldPrice, "must not be negative")
	}
	if !ValidCategory(category) {
		return NewValidationError(FieldCategory, "unknown category")
	}
	if !ValidStore(store) {
		return NewValidationError(FieldStore, "unknown store")
	}
	if err := validateLink(link); err != nil {
		return err
	}
	return nil
}

func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return NewValidationError(FieldLink, "must be a valid URL")
	}
	if !u.IsAbs() || u.Host == "" {
		return NewValidationError(FieldLink, "must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewValidationError(FieldLink, "must use http or https")
	}
	return nil
}

// NewEntry creates a new Entry aggregate and records its created event.
// images must already be media-host URLs; a create with no images is
// rejected here as a last line of defense.
func NewEntry(id, name, description string, price *Money, images []string, category, store, link string, now time.Time) (*Entry, error) {
	if err := ValidateEntryInput(name, price, category, store, link); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, NewValidationError(FieldImages, "at least one image is required")
	}

	e := &Entry{
		id:          id,
		name:        name,
		description: description,
		price:       price.Copy(),
		images:      append([]string(nil), images...),
		category:    category,
		store:       store,
		link:        link,
		createdAt:   now,
		updatedAt:   now,
		changes:     NewChangeTracker(),
		events:      make([]Event, 0),
	}

	e.changes.MarkDirty(FieldName)
	e.changes.MarkDirty(FieldDescription)
	e.changes.MarkDirty(FieldPrice)
	e.changes.MarkDirty(FieldImages)
	e.changes.MarkDirty(FieldCategory)
	e.changes.MarkDirty(FieldStore)
	e.changes.MarkDirty(FieldLink)

	e.recordEvent(&EntryCreatedEvent{Entry: e.Snapshot()})

	return e, nil
}

// ReconstructEntry rebuilds an Entry from storage without validation or
// events; the row was validated when it was written.
func ReconstructEntry(
	id, name, description string,
	price *Money,
	images []string,
	category, store, link string,
	createdAt, updatedAt time.Time,
) *Entry {
	return &Entry{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		images:      images,
		category:    category,
		store:       store,
		link:        link,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		changes:     NewChangeTracker(),
		events:      make([]Event, 0),
	}
}

func (e *Entry) ID() string              { return e.id }
func (e *Entry) Name() string            { return e.name }
func (e *Entry) Description() string     { return e.description }
func (e *Entry) Price() *Money           { return e.price.Copy() }
func (e *Entry) Category() string        { return e.category }
func (e *Entry) Store() string           { return e.store }
func (e *Entry) Link() string            { return e.link }
func (e *Entry) CreatedAt() time.Time    { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time    { return e.updatedAt }
func (e *Entry) Changes() *ChangeTracker { return e.changes }
func (e *Entry) DomainEvents() []Event   { return e.events }

// Images returns a copy of the ordered image URL list.
func (e *Entry) Images() []string {
	return append([]string(nil), e.images...)
}

// Snapshot returns the JSON-ready projection used by events and the API.
func (e *Entry) Snapshot() *EntrySnapshot {
	return &EntrySnapshot{
		ID:          e.id,
		Name:        e.name,
		Description: e.description,
		Price:       e.price.Float64(),
		Images:      e.Images(),
		Category:    e.category,
		Store:       e.store,
		Link:        e.link,
		CreatedAt:   e.createdAt,
		UpdatedAt:   e.updatedAt,
	}
}

// SetName updates the display name.
func (e *Entry) SetName(name string) error {
	if name == "" {
		return NewValidationError(FieldName, "must not be empty")
	}
	if name != e.name {
		e.name = name
		e.changes.MarkDirty(FieldName)
	}
	return nil
}

// SetDescription updates the free-text description.
func (e *Entry) SetDescription(description string) {
	if description != e.description {
		e.description = description
		e.changes.MarkDirty(FieldDescription)
	}
}

// SetPrice updates the price.
func (e *Entry) SetPrice(price *Money) error {
	if price == nil {
		return NewValidationError(FieldPrice, "is required")
	}
	if price.IsNegative() {
		return NewValidationError(FieldPrice, "must not be negative")
	}
	if !price.Equals(e.price) {
		e.price = price.Copy()
		e.changes.MarkDirty(FieldPrice)
	}
	return nil
}

// SetCategory updates the category.
func (e *Entry) SetCategory(category string) error {
	if !ValidCategory(category) {
		return NewValidationError(FieldCategory, "unknown category")
	}
	if category != e.category {
		e.category = category
		e.changes.MarkDirty(FieldCategory)
	}
	return nil
}

// SetStore updates the store tag.
func (e *Entry) SetStore(store string) error {
	if !ValidStore(store) {
		return NewValidationError(FieldStore, "unknown store")
	}
	if store != e.store {
		e.store = store
		e.changes.MarkDirty(FieldStore)
	}
	return nil
}

// SetLink updates the outbound link.
func (e *Entry) SetLink(link string) error {
	if err := validateLink(link); err != nil {
		return err
	}
	if link != e.link {
		e.link = link
		e.changes.MarkDirty(FieldLink)
	}
	return nil
}

// ReplaceImages swaps the image list for freshly uploaded URLs. Updates that
// carry no new uploads never call this, so existing images are retained.
func (e *Entry) ReplaceImages(images []string) error {
	if len(images) == 0 {
		return NewValidationError(FieldImages, "at least one image is required")
	}
	e.images = append([]string(nil), images...)
	e.changes.MarkDirty(FieldImages)
	return nil
}

// MarkUpdated stamps the update time and records a single updated event for
// the whole mutation, regardless of how many setters ran.
func (e *Entry) MarkUpdated(now time.Time) {
	e.updatedAt = now
	e.recordEvent(&EntryUpdatedEvent{Entry: e.Snapshot()})
}

func (e *Entry) recordEvent(event Event) {
	e.events = append(e.events, event)
}

// ClearEvents drops recorded events after they were published.
func (e *Entry) ClearEvents() {
	e.events = make([]Event, 0)
}
