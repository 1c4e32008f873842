package domain

import (
	"net/url"
	"slices"
	"time"
)

// ContentSource is a followed feed, channel, podcast or newsletter.
type ContentSource struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	URL       string      `json:"url"`
	Kind      ContentKind `json:"kind"`
	Tags      []string    `json:"tags,omitempty"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
}

// NewContentSource returns a defaulted draft.
func NewContentSource() ContentSource {
	return ContentSource{Kind: ContentFeed, Active: true}
}

func (c ContentSource) Key() string   { return c.ID }
func (c ContentSource) Label() string { return c.Name }

func (c ContentSource) Value(field string) any {
	switch field {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "url":
		return c.URL
	case "kind":
		return c.Kind
	case "tags":
		return c.Tags
	case "active":
		return c.Active
	case "createdAt":
		return c.CreatedAt
	}
	return nil
}

func (c ContentSource) Validate() error {
	v := ValidationError{}
	required(v, "name", c.Name)
	required(v, "url", c.URL)
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
			v.Add("url", "must be an absolute URL")
		}
	}
	if _, ok := contentKinds[c.Kind]; !ok {
		v.Add("kind", "is required")
	}
	return v.Err()
}

func (c ContentSource) Clone() ContentSource {
	c.Tags = slices.Clone(c.Tags)
	return c
}

// ContentSourceFilter narrows content source searches.
type ContentSourceFilter struct {
	Kind       ContentKind `json:"kind,omitempty"`
	ActiveOnly bool        `json:"activeOnly,omitempty"`
}

func (f ContentSourceFilter) IsZero() bool { return f == ContentSourceFilter{} }
