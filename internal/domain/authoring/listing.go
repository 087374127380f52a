package authoring

import (
	"context"
	"errors"

	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
)

type Entry struct {
	ContentID uint         `json:"id"`
	Order     int          `json:"order"`
	Item      content.View `json:"item"`
}

type ModuleContents struct {
	Module  courses.Module `json:"module"`
	Entries []Entry        `json:"contents"`
	// Dangling counts entries skipped because their payload is gone.
	Dangling int `json:"-"`
}

// ListContents resolves and renders the entries of an owned module in order.
func (s *Service) ListContents(ctx context.Context, owner, moduleID uint) (ModuleContents, error) {
	db := s.DB.WithContext(ctx)

	var out ModuleContents
	if err := courses.OwnedModules(db, owner).First(&out.Module, moduleID).Error; err != nil {
		return ModuleContents{}, notFound(err)
	}

	entries, err := courses.ContentsOf(db, moduleID)
	if err != nil {
		return ModuleContents{}, err
	}

	out.Entries = make([]Entry, 0, len(entries))
	for _, e := range entries {
		item, err := s.Registry.Resolve(db, e.Reference)
		if errors.Is(err, content.ErrDanglingReference) {
			out.Dangling++
			s.log().Warn("skipping content with missing payload",
				"content_id", e.ID, "kind", e.ItemKind, "item_id", e.ItemID)
			continue
		}
		if err != nil {
			return ModuleContents{}, err
		}

		view, err := s.Registry.Render(ctx, item)
		if err != nil {
			return ModuleContents{}, err
		}
		out.Entries = append(out.Entries, Entry{ContentID: e.ID, Order: e.Order, Item: view})
	}
	return out, nil
}
