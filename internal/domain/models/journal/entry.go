package journal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Collection is the document collection holding journal entries.
const Collection = "journals"

// ImagePathPrefix is the blob store folder for entry images.
const ImagePathPrefix = "images/"

const (
	dateKeyLayout     = "2006-01-02"
	displayDateLayout = "Monday, January 2, 2006"
)

// Entry is the persisted journal document for one calendar date.
type Entry struct {
	DateKey  DateKey   `json:"-" db:"date_key"`
	Title    string    `json:"title" db:"title"`
	Content  string    `json:"content" db:"content"`
	Date     string    `json:"date" db:"date"`          // Display form, e.g. "Friday, March 1, 2024"
	ImageURL string    `json:"imageUrl" db:"image_url"` // "" when the entry has no image
	Updated  time.Time `json:"-" db:"updated_at"`
}

// DateKey is the canonical identity of an entry: a calendar date in
// YYYY-MM-DD form.
type DateKey string

// ParseDateKey accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// canonical key. Timestamps keep the calendar date of their own offset.
func ParseDateKey(s string) (DateKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("date is required")
	}
	if t, err := time.Parse(dateKeyLayout, s); err == nil {
		return DateKey(t.Format(dateKeyLayout)), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateKey(t.Format(dateKeyLayout)), nil
	}
	return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// KeyFor returns the key of the calendar date t falls on.
func KeyFor(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

func (k DateKey) String() string { return string(k) }

// Time returns midnight UTC of the key's date.
func (k DateKey) Time() (time.Time, error) {
	return time.Parse(dateKeyLayout, string(k))
}

// DisplayDate formats the key for humans ("Friday, March 1, 2024").
// An unparseable key is returned unchanged.
func (k DateKey) DisplayDate() string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return t.Format(displayDateLayout)
}

// FileNameFromPath returns the last path segment of a local uri, file path or
// download URL. Query strings and fragments are ignored and escaped segments
// are decoded, so a storage URL like ".../o/images%2Fcat.jpg?alt=media" yields
// "cat.jpg".
func FileNameFromPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// ImagePath returns the blob store path for an image file name.
func ImagePath(fileName string) (string, error) {
	name := FileNameFromPath(fileName)
	switch name {
	case "", ".", "..":
		return "", fmt.Errorf("invalid image file name %q", fileName)
	}
	return ImagePathPrefix + name, nil
}
