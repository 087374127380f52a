package content

import "errors"

// Kind tags a payload type. Only the kinds below are accepted anywhere a tag
// comes from a client.
type Kind string

const (
	KindText  Kind = "text"
	KindFile  Kind = "file"
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrInvalidType       = errors.New("content type not allowed")
	ErrDanglingReference = errors.New("content reference points at a missing item")
)

// Kinds returns the allow-list in a fixed order.
func Kinds() []Kind {
	return []Kind{KindText, KindVideo, KindImage, KindFile}
}

// ParseKind maps a client tag onto the allow-list. Tags match exactly.
func ParseKind(tag string) (Kind, error) {
	switch k := Kind(tag); k {
	case KindText, KindFile, KindImage, KindVideo:
		return k, nil
	}
	return "", ErrInvalidType
}
