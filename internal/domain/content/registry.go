package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"educa-app/internal/domain/media"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Linker turns a stored object key into a URL a client can fetch.
type Linker interface {
	URL(ctx context.Context, key string) (string, error)
}

// Accessor is what the registry knows about one kind.
type Accessor struct {
	Kind Kind
	New  func() Item
	// Fields are the Input fields the kind's schema checks.
	Fields []string
	// Upload kinds store their bytes in the blob store.
	Upload bool
	Accept func(contentType string) bool
	Bind   func(item Item, in Input)
	Render func(ctx context.Context, item Item, links Linker) (View, error)
}

// Registry dispatches references to their storage and renderer.
type Registry struct {
	accessors map[Kind]Accessor
	links     Linker
	validate  *validator.Validate
}

func NewRegistry(links Linker) *Registry {
	r := &Registry{
		accessors: map[Kind]Accessor{},
		links:     links,
		validate:  newValidator(),
	}
	r.register(Accessor{
		Kind:   KindText,
		New:    func() Item { return &Text{} },
		Fields: []string{"Title", "Content"},
		Bind: func(item Item, in Input) {
			item.(*Text).Content = in.Content
		},
		Render: renderText,
	})
	r.register(Accessor{
		Kind:   KindVideo,
		New:    func() Item { return &Video{} },
		Fields: []string{"Title", "URL"},
		Bind: func(item Item, in Input) {
			item.(*Video).URL = in.URL
		},
		Render: renderVideo,
	})
	r.register(Accessor{
		Kind:   KindImage,
		New:    func() Item { return &Image{} },
		Fields: []string{"Title"},
		Upload: true,
		Accept: func(ct string) bool { return strings.HasPrefix(ct, "image/") },
		Bind:   bindObject,
		Render: renderObject,
	})
	r.register(Accessor{
		Kind:   KindFile,
		New:    func() Item { return &File{} },
		Fields: []string{"Title"},
		Upload: true,
		Bind:   bindObject,
		Render: renderObject,
	})
	return r
}

func (r *Registry) register(a Accessor) { r.accessors[a.Kind] = a }

// Lookup resolves a client tag to its accessor.
func (r *Registry) Lookup(tag string) (Accessor, error) {
	k, err := ParseKind(tag)
	if err != nil {
		return Accessor{}, err
	}
	a, ok := r.accessors[k]
	if !ok {
		return Accessor{}, ErrInvalidType
	}
	return a, nil
}

// NewReference binds a tag and an item id, refusing tags off the allow-list.
func (r *Registry) NewReference(tag string, itemID uint) (Reference, error) {
	a, err := r.Lookup(tag)
	if err != nil {
		return Reference{}, err
	}
	return Reference{ItemKind: a.Kind, ItemID: itemID}, nil
}

// Resolve loads the item a reference points at. A missing row is reported
// as ErrDanglingReference.
func (r *Registry) Resolve(tx *gorm.DB, ref Reference) (Item, error) {
	a, err := r.Lookup(string(ref.ItemKind))
	if err != nil {
		return nil, err
	}
	item := a.New()
	if err := tx.First(item, ref.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d", ErrDanglingReference, ref.ItemKind, ref.ItemID)
		}
		return nil, err
	}
	return item, nil
}

// FindOwned loads an item of the given kind that belongs to owner.
func (r *Registry) FindOwned(tx *gorm.DB, a Accessor, itemID, owner uint) (Item, error) {
	item := a.New()
	if err := tx.Where("owner_id = ?", owner).First(item, itemID).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks in against the kind's schema. creating requires an upload
// for upload kinds; an update may keep the stored object.
func (r *Registry) Validate(a Accessor, in Input, creating bool) map[string]string {
	errs := map[string]string{}
	if err := r.validate.StructPartial(in.Clean(), a.Fields...); err != nil {
		errs = fieldErrors(err)
	}
	if a.Upload {
		switch {
		case in.Upload == nil && creating:
			errs["file"] = "This field is required."
		case in.Upload != nil && in.Upload.Size == 0:
			errs["file"] = "The submitted file is empty."
		case in.Upload != nil && a.Accept != nil && !a.Accept(in.Upload.ContentType):
			errs["file"] = "Upload a valid image."
		}
	}
	return errs
}

// Render builds the client view of an item.
func (r *Registry) Render(ctx context.Context, item Item) (View, error) {
	a, ok := r.accessors[item.Kind()]
	if !ok {
		return View{}, ErrInvalidType
	}
	return a.Render(ctx, item, r.links)
}

// Purge deletes the payload rows behind refs and returns the stored objects
// they owned so the caller can drop the bytes once the transaction commits.
func (r *Registry) Purge(tx *gorm.DB, refs []Reference) ([]media.Object, error) {
	byKind := map[Kind][]uint{}
	for _, ref := range refs {
		byKind[ref.ItemKind] = append(byKind[ref.ItemKind], ref.ItemID)
	}

	var objects []media.Object
	for _, k := range Kinds() {
		ids := byKind[k]
		if len(ids) == 0 {
			continue
		}
		a := r.accessors[k]
		if a.Upload {
			var objs []media.Object
			if err := tx.Model(a.New()).Where("id IN ?", ids).Find(&objs).Error; err != nil {
				return nil, err
			}
			objects = append(objects, objs...)
		}
		if err := tx.Where("id IN ?", ids).Delete(a.New()).Error; err != nil {
			return nil, err
		}
	}
	return objects, nil
}

func bindObject(item Item, in Input) {
	if in.Object == nil {
		return
	}
	h := item.(media.Holder)
	*h.StoredObject() = *in.Object
}
