package courses

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug turns a title into a URL-safe slug.
// Example: "Intro to Go" -> "intro-to-go"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "course"
	}
	if len(base) > 180 {
		base = strings.TrimRight(base[:180], "-")
	}
	return base
}

// UniqueCourseSlug returns the slug of title, suffixed with -2, -3... until
// no course other than exceptID uses it.
func UniqueCourseSlug(db *gorm.DB, title string, exceptID uint) (string, error) {
	base := MakeSlug(title)
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := fresh(db).Model(&Course{}).
			Where("slug = ? AND id <> ?", slug, exceptID).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
