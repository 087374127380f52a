package content

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"educa-app/internal/domain/media"

	"github.com/go-playground/validator/v10"
)

// Upload is a file part submitted with a file or image form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Input is everything a client may submit for a payload. Owner, order and
// timestamps are not part of it and are always set by the server.
type Input struct {
	Title   string `form:"title" json:"title" validate:"required,max=250"`
	Content string `form:"content" json:"content" validate:"required"`
	URL     string `form:"url" json:"url" validate:"required,url,max=200"`

	Upload *Upload `form:"-" json:"-"`
	// Object is filled in once Upload has been written to the blob store.
	Object *media.Object `form:"-" json:"-"`
}

// Clean returns in with surrounding whitespace stripped from its text fields,
// so blank values fail required checks.
func (in Input) Clean() Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.URL = strings.TrimSpace(in.URL)
	return in
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["__all__"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "url":
		return "Enter a valid URL."
	}
	return "Invalid value."
}
