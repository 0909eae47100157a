package journal

import (
	"errors"
	"fmt"
	"net/url"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// fillInMessage is shown when a save is attempted without title or content
const fillInMessage = "Please fill in the title and content."

type entryFields struct {
	Title   string
	Content string
}

// ValidateEntryFields checks that an entry can be persisted: both title and
// content must be non-empty.
func ValidateEntryFields(title, content string) error {
	f := entryFields{Title: title, Content: content}
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Content, validation.Required),
	)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("%s (%v)", fillInMessage, err)}
	}
	return nil
}

// ValidateImageURL accepts "" (no image) or an absolute http(s) URL.
func ValidateImageURL(imageURL string) error {
	err := validation.Validate(imageURL, is.RequestURL, validation.By(httpScheme))
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("invalid image url: %v", err)}
	}
	return nil
}

func httpScheme(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http or https url")
	}
	return nil
}

// validateDateKey re-parses key so callers can pass raw input through DateKey
func validateDateKey(key models.DateKey) (models.DateKey, error) {
	k, err := models.ParseDateKey(key.String())
	if err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	return k, nil
}
