package authoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/media"
	"educa-app/internal/infra/blobstore"

	"gorm.io/gorm"
)

type State string

const (
	Created State = "created"
	Updated State = "updated"
)

type Result struct {
	State     State
	Kind      content.Kind
	ModuleID  uint
	ContentID uint // zero on update
	ItemID    uint
}

// Form is what an authoring form needs to render: the kind's fields and,
// when editing, the stored item.
type Form struct {
	Kind     content.Kind
	ModuleID uint
	Fields   []string
	Upload   bool
	Item     content.Item
}

// Service runs the content authoring workflows for one owner at a time.
type Service struct {
	DB       *gorm.DB
	Registry *content.Registry
	Blobs    blobstore.Store
	Log      *slog.Logger
}

func (s *Service) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// resolve walks module -> kind -> item. item is nil when itemID is nil.
func (s *Service) resolve(db *gorm.DB, owner, moduleID uint, tag string, itemID *uint) (content.Accessor, content.Item, error) {
	var m courses.Module
	if err := courses.OwnedModules(db, owner).First(&m, moduleID).Error; err != nil {
		return content.Accessor{}, nil, notFound(err)
	}

	a, err := s.Registry.Lookup(tag)
	if err != nil {
		return content.Accessor{}, nil, err
	}

	if itemID == nil {
		return a, nil, nil
	}
	item, err := s.Registry.FindOwned(db, a, *itemID, owner)
	if err != nil {
		return content.Accessor{}, nil, notFound(err)
	}
	return a, item, nil
}

// Load prepares the create or edit form of a payload.
func (s *Service) Load(ctx context.Context, owner, moduleID uint, tag string, itemID *uint) (Form, error) {
	a, item, err := s.resolve(s.DB.WithContext(ctx), owner, moduleID, tag, itemID)
	if err != nil {
		return Form{}, err
	}
	return Form{Kind: a.Kind, ModuleID: moduleID, Fields: a.Fields, Upload: a.Upload, Item: item}, nil
}

// Save creates or updates a payload. A create also appends a content entry
// to the module; an update never touches the module's entries.
func (s *Service) Save(ctx context.Context, owner, moduleID uint, tag string, itemID *uint, in content.Input) (Result, error) {
	db := s.DB.WithContext(ctx)

	a, item, err := s.resolve(db, owner, moduleID, tag, itemID)
	if err != nil {
		return Result{}, err
	}
	creating := item == nil
	in = in.Clean()

	if errs := s.Registry.Validate(a, in, creating); len(errs) > 0 {
		return Result{}, &ValidationError{Fields: errs}
	}

	var uploaded, replaced *media.Object
	if a.Upload && in.Upload != nil {
		obj := media.Object{
			Key:         blobstore.NewKey(string(a.Kind)+"s", in.Upload.Filename),
			Filename:    in.Upload.Filename,
			ContentType: in.Upload.ContentType,
			Size:        in.Upload.Size,
		}
		if err := s.Blobs.Put(ctx, obj.Key, in.Upload.Body, obj.Size, obj.ContentType); err != nil {
			return Result{}, fmt.Errorf("store upload: %w", err)
		}
		uploaded = &obj
		in.Object = &obj

		if h, ok := item.(media.Holder); ok && h.StoredObject().Key != "" {
			old := *h.StoredObject()
			replaced = &old
		}
	}

	if creating {
		item = a.New()
		item.Base().OwnerID = owner
	}
	item.Base().Title = in.Title
	a.Bind(item, in)

	res := Result{Kind: a.Kind, ModuleID: moduleID}
	err = db.Transaction(func(tx *gorm.DB) error {
		if !creating {
			res.State = Updated
			return tx.Save(item).Error
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}
		entry := courses.Content{
			ModuleID:  moduleID,
			Reference: content.Reference{ItemKind: a.Kind, ItemID: item.Base().ID},
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		res.State = Created
		res.ContentID = entry.ID
		return nil
	})
	if err != nil {
		if uploaded != nil {
			s.dropBlobs(ctx, []media.Object{*uploaded})
		}
		return Result{}, err
	}

	res.ItemID = item.Base().ID
	if replaced != nil {
		s.dropBlobs(ctx, []media.Object{*replaced})
	}
	return res, nil
}

type Deleted struct {
	ModuleID uint
	// Dangling is set when the entry pointed at a payload that was already gone.
	Dangling bool
}

// DeleteContent removes an owned content entry and its payload as one unit.
func (s *Service) DeleteContent(ctx context.Context, owner, contentID uint) (Deleted, error) {
	var (
		out     Deleted
		objects []media.Object
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry courses.Content
		if err := courses.OwnedContents(tx, owner).First(&entry, contentID).Error; err != nil {
			return notFound(err)
		}
		out.ModuleID = entry.ModuleID

		if _, err := s.Registry.Resolve(tx, entry.Reference); err != nil {
			if !errors.Is(err, content.ErrDanglingReference) {
				return err
			}
			out.Dangling = true
			s.log().Warn("deleting content with missing payload",
				"content_id", entry.ID, "kind", entry.ItemKind, "item_id", entry.ItemID)
		}

		objs, err := s.Registry.Purge(tx, []content.Reference{entry.Reference})
		if err != nil {
			return err
		}
		objects = objs

		return tx.Delete(&courses.Content{}, entry.ID).Error
	})
	if err != nil {
		return Deleted{}, err
	}

	s.dropBlobs(ctx, objects)
	return out, nil
}

// DeleteCourse removes an owned course and everything under it.
func (s *Service) DeleteCourse(ctx context.Context, owner, courseID uint) error {
	var objects []media.Object
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		objs, err := courses.DeleteCourse(tx, s.Registry, owner, courseID)
		objects = objs
		return err
	})
	if err != nil {
		return notFound(err)
	}
	s.dropBlobs(ctx, objects)
	return nil
}

// SaveModules applies the module formset of an owned course.
func (s *Service) SaveModules(ctx context.Context, owner, courseID uint, rows []courses.ModuleRow) error {
	var objects []media.Object
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c courses.Course
		if err := courses.OwnedCourses(tx, owner).First(&c, courseID).Error; err != nil {
			return err
		}
		objs, err := courses.SaveModules(tx, s.Registry, c.ID, rows)
		objects = objs
		return err
	})
	if err != nil {
		return notFound(err)
	}
	s.dropBlobs(ctx, objects)
	return nil
}

// Blob removal runs after commit; a failure leaves an orphan object, never a
// row pointing at missing bytes.
func (s *Service) dropBlobs(ctx context.Context, objects []media.Object) {
	for _, o := range objects {
		if o.Key == "" {
			continue
		}
		if err := s.Blobs.Delete(ctx, o.Key); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			s.log().Error("blob delete failed", "key", o.Key, "err", err)
		}
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
