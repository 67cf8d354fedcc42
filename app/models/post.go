package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ExcerptLength is the number of runes shown in a post card preview.
const ExcerptLength = 100

var validate = validator.New()

// Validate checks the input against its struct tags. Creation only calls it
// when validation is switched on.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Score is the net vote count used by the "mostVoted" ordering.
func (p *Post) Score() int {
	return p.Upvotes - p.Downvotes
}

// Clone returns a deep copy so callers never share the stored tag slice.
func (p *Post) Clone() *Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	return &c
}

// Excerpt returns the first ExcerptLength runes of the content, with "..."
// appended when the content was cut.
func (p *Post) Excerpt() string {
	runes := []rune(p.Content)
	if len(runes) <= ExcerptLength {
		return p.Content
	}
	return string(runes[:ExcerptLength]) + "..."
}

// ParseTags splits raw comma separated text into trimmed, non-empty tags.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tags = append(tags, tok)
		}
	}
	return tags
}
