package core

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Kind describes one collection by convention: how its records are labelled,
// which fields the generic form skips and whether new records can be created.
type Kind struct {
	// Name is the machine name, e.g. "predictions".
	Name string
	// Title is shown in tabs and messages.
	Title string
	// Singular names one record in messages, e.g. "Blog Post".
	Singular string
	// BodyField, if set, is edited through a dedicated markdown control and
	// excluded from the generic form.
	BodyField string
	// IDPrefix and IDWidth shape generated ids. Only creatable kinds use them.
	IDPrefix string
	IDWidth  int
	// Creatable allows synthesizing new records from Template.
	Creatable bool

	label    func(Record) string
	template func(id string, now time.Time) Record
}

// Excluded returns the fields the generic form must skip.
func (k Kind) Excluded() []string {
	if k.BodyField == "" {
		return nil
	}
	return []string{k.BodyField}
}

// Label is the list label for a record.
func (k Kind) Label(r Record) string {
	if k.label == nil {
		return r.Text(IDField, "N/A")
	}
	return k.label(r)
}

// Body returns the markdown body of r, or "" when the kind has none.
func (k Kind) Body(r Record) string {
	if k.BodyField == "" {
		return ""
	}
	return r.Text(k.BodyField, "")
}

// NewTemplate synthesizes a fresh record with the next free id. The records
// slice is only read.
func (k Kind) NewTemplate(records []Record, now time.Time) (Record, error) {
	if !k.Creatable || k.template == nil {
		return Record{}, fmt.Errorf("%s: %w", k.Title, ErrNotCreatable)
	}
	return k.template(NextID(records, k.IDPrefix, k.IDWidth), now), nil
}

// Predictions is the structured prediction collection.
var Predictions = Kind{
	Name:     "predictions",
	Title:    "Predictions",
	Singular: "Prediction",
	label: func(r Record) string {
		return fmt.Sprintf("%s: %s...", r.Text(IDField, "N/A"), truncateRunes(r.Text("text", "No Text"), 50))
	},
}

// BlogPosts is the markdown blog post collection.
var BlogPosts = Kind{
	Name:      "blog",
	Title:     "Blog Posts",
	Singular:  "Blog Post",
	BodyField: "content",
	IDPrefix:  "B",
	IDWidth:   3,
	Creatable: true,
	label: func(r Record) string {
		return fmt.Sprintf("%s: %s", r.Text(IDField, "N/A"), r.Text("title", "No Title"))
	},
	template: func(id string, now time.Time) Record {
		return NewRecord(
			F(IDField, String(id)),
			F("title", String("New Blog Post Title")),
			F("date", String(now.Format("2006-01-02"))),
			F("author", String("Your Name")),
			F("summary", String("A brief summary of this new post.")),
			F("content", String("# New Post\n\nStart writing your Markdown content here!")),
			F("tags", Strings("new", "draft")),
		)
	},
}

// Kinds lists the built-in collections in display order.
func Kinds() []Kind { return []Kind{Predictions, BlogPosts} }

// KindByName resolves a kind by machine name. "blogPosts" and "posts" are
// accepted as aliases for the blog collection.
func KindByName(name string) (Kind, bool) {
	switch name {
	case Predictions.Name, "prediction":
		return Predictions, true
	case BlogPosts.Name, "blogPosts", "posts", "post":
		return BlogPosts, true
	}
	return Kind{}, false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
