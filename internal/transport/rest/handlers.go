// Package rest exposes the catalog over HTTP+JSON for the storefront and
// admin frontend. Mutations accept multipart forms because image bytes ride
// along with the entry fields.
package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_entries"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_entry"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_entry"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_entry"
)

// maxFormMemory bounds in-memory multipart parsing; larger files spill to
// temp storage.
const maxFormMemory = 32 << 20

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// EntryCreator handles the create mutation.
type EntryCreator interface {
	Execute(ctx context.Context, req *create_entry.Request) (*domain.EntrySnapshot, error)
}

// EntryUpdater handles the update mutation.
type EntryUpdater interface {
	Execute(ctx context.Context, req *update_entry.Request) (*domain.EntrySnapshot, error)
}

// EntryDeleter handles the delete mutation.
type EntryDeleter interface {
	Execute(ctx context.Context, req *delete_entry.Request) error
}

// EntryGetter reads one entry.
type EntryGetter interface {
	Execute(ctx context.Context, entryID string) (*domain.EntrySnapshot, error)
}

// EntryLister reads a filtered page of entries.
type EntryLister interface {
	Execute(ctx context.Context, req *list_entries.Request) (*contracts.ListResult, error)
}

// Handler holds the HTTP endpoints for catalog entries.
type Handler struct {
	creator EntryCreator
	updater EntryUpdater
	deleter EntryDeleter
	getter  EntryGetter
	lister  EntryLister
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(creator EntryCreator, updater EntryUpdater, deleter EntryDeleter, getter EntryGetter, lister EntryLister) *Handler {
	return &Handler{
		creator: creator,
		updater: updater,
		deleter: deleter,
		getter:  getter,
		lister:  lister,
	}
}

// List handles GET /products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_entries.Request{
		Category: q.Get("category"),
		Store:    q.Get("store"),
		Search:   q.Get("search"),
		Page:     intParam(q.Get("page")),
		PageSize: intParam(q.Get("pageSize")),
	}

	page, err := h.lister.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /products/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.getter.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Create handles POST /products.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseEntryForm(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	snap, err := h.creator.Execute(r.Context(), &create_entry.Request{
		Name:        form.name,
		Description: form.description,
		Price:       form.price,
		Category:    form.category,
		Store:       form.store,
		Link:        form.link,
		Images:      form.images,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// Update handles PUT /products/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := parseEntryForm(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	snap, err := h.updater.Execute(r.Context(), &update_entry.Request{
		ID:          chi.URLParam(r, "id"),
		Name:        form.name,
		Description: form.description,
		Price:       form.price,
		Category:    form.category,
		Store:       form.store,
		Link:        form.link,
		Images:      form.images,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Delete handles DELETE /products/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if err := h.deleter.Execute(r.Context(), &delete_entry.Request{ID: entryID}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": entryID})
}

// entryForm carries the decoded multipart fields shared by create and
// update.
type entryForm struct {
	name        string
	description string
	price       *domain.Money
	category    string
	store       string
	link        string
	images      []contracts.ImageUpload
}

// parseEntryForm decodes the multipart body. Malformed bodies and prices are
// validation errors; image file contents are read fully here so the
// interactor works with bytes only.
func parseEntryForm(r *http.Request) (*entryForm, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, domain.NewValidationError("body", "expected a multipart form")
	}

	price, err := domain.ParseMoney(r.FormValue("price"))
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldPrice, "must be a decimal number")
	}

	form := &entryForm{
		name:        r.FormValue("name"),
		description: r.FormValue("description"),
		price:       price,
		category:    r.FormValue("category"),
		store:       r.FormValue("store"),
		link:        r.FormValue("link"),
	}

	if r.MultipartForm != nil {
		for idx, header := range r.MultipartForm.File["images"] {
			if header.Size > maxImageBytes {
				return nil, domain.NewValidationError(domain.FieldImages, fmt.Sprintf("image %d exceeds the size limit", idx))
			}
			file, err := header.Open()
			if err != nil {
				return nil, domain.NewValidationError(domain.FieldImages, fmt.Sprintf("image %d could not be read", idx))
			}
			data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
			file.Close()
			if err != nil || int64(len(data)) > maxImageBytes {
				return nil, domain.NewValidationError(domain.FieldImages, fmt.Sprintf("image %d could not be read", idx))
			}
			form.images = append(form.images, contracts.ImageUpload{Filename: header.Filename, Data: data})
		}
	}
	return form, nil
}

func intParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
