package models

import (
	"slices"
	"strings"
	"time"
)

// Photo is an uploaded image record. Uploader and Likes hold usernames by value.
type Photo struct {
	ID          string    `json:"id" db:"id"`
	Uploader    string    `json:"uploader" db:"uploader"`
	URL         string    `json:"url" db:"url"`
	Title       string    `json:"title" db:"title"`
	Tags        []string  `json:"tags" db:"tags"`
	Description string    `json:"description" db:"description"`
	Likes       []string  `json:"likes" db:"likes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// NewPhoto builds a photo with parsed tags and no likes.
func NewPhoto(uploader, url, title, tagsCSV, description string, createdAt time.Time) *Photo {
	return &Photo{
		Uploader:    uploader,
		URL:         url,
		Title:       title,
		Tags:        ParseTags(tagsCSV),
		Description: description,
		Likes:       []string{},
		CreatedAt:   createdAt,
	}
}

// ParseTags splits a comma separated list and trims every tag.
// Empty entries are kept: "a,,b" gives ["a" "" "b"]. An empty input gives no tags.
func ParseTags(csv string) []string {
	if csv == "" {
		return []string{}
	}
	tags := strings.Split(csv, ",")
	for i, tag := range tags {
		tags[i] = strings.TrimSpace(tag)
	}
	return tags
}

// HasLike reports whether username is in the likes set.
func (p *Photo) HasLike(username string) bool {
	return slices.Contains(p.Likes, username)
}

// ToggleLike adds username to the likes set if absent, removes it otherwise.
// It returns true when the photo is liked after the call.
func (p *Photo) ToggleLike(username string) bool {
	if i := slices.Index(p.Likes, username); i >= 0 {
		p.Likes = slices.Delete(p.Likes, i, i+1)
		return false
	}
	p.Likes = append(p.Likes, username)
	return true
}

// Normalize replaces nil slices so they encode as [] instead of null.
func (p *Photo) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
}

// SortNewestFirst orders photos by creation time, newest first.
// Ties keep the order given by the store.
func SortNewestFirst(photos []Photo) {
	slices.SortStableFunc(photos, func(a, b Photo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
