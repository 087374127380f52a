package content

import (
	"context"
	"net/url"
	"strings"
	"time"

	"educa-app/internal/domain/media"

	"github.com/microcosm-cc/bluemonday"
)

// View is the presentation form of an item, whatever its kind.
type View struct {
	Kind  Kind   `json:"kind"`
	ID    uint   `json:"id"`
	Title string `json:"title"`

	HTML        string `json:"html,omitempty"`
	URL         string `json:"url,omitempty"`
	EmbedURL    string `json:"embed_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var textPolicy = bluemonday.UGCPolicy()

func baseView(item Item) View {
	b := item.Base()
	return View{
		Kind:      item.Kind(),
		ID:        b.ID,
		Title:     b.Title,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func renderText(_ context.Context, item Item, _ Linker) (View, error) {
	v := baseView(item)
	v.HTML = textPolicy.Sanitize(item.(*Text).Content)
	return v, nil
}

func renderVideo(_ context.Context, item Item, _ Linker) (View, error) {
	v := baseView(item)
	v.URL = item.(*Video).URL
	v.EmbedURL = EmbedURL(v.URL)
	return v, nil
}

func renderObject(ctx context.Context, item Item, links Linker) (View, error) {
	v := baseView(item)
	obj := item.(media.Holder).StoredObject()
	v.Filename = obj.Filename
	v.ContentType = obj.ContentType
	v.Size = obj.Size
	if links != nil && obj.Key != "" {
		u, err := links.URL(ctx, obj.Key)
		if err != nil {
			return View{}, err
		}
		v.URL = u
	}
	return v, nil
}

// EmbedURL returns the player URL for YouTube and Vimeo links, or "".
func EmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")

	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
		if rest, ok := strings.CutPrefix(path, "embed/"); ok && rest != "" {
			return "https://www.youtube.com/embed/" + rest
		}
	case "youtu.be":
		if path != "" {
			return "https://www.youtube.com/embed/" + path
		}
	case "vimeo.com":
		if path != "" && !strings.Contains(path, "/") {
			return "https://player.vimeo.com/video/" + path
		}
	}
	return ""
}
