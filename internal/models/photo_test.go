package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
	}{
		{name: "trims every tag", csv: "a, b ,c", want: []string{"a", "b", "c"}},
		{name: "keeps empty entries", csv: "a,,b", want: []string{"a", "", "b"}},
		{name: "trailing comma", csv: "sunset,", want: []string{"sunset", ""}},
		{name: "single tag", csv: " beach ", want: []string{"beach"}},
		{name: "empty input", csv: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.csv))
		})
	}
}

func TestNewPhoto(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got := NewPhoto("alice", "/uploads/photo/1.jpg", "Sea", "a, b", "blue", now)

	assert.Equal(t, &Photo{
		Uploader:    "alice",
		URL:         "/uploads/photo/1.jpg",
		Title:       "Sea",
		Tags:        []string{"a", "b"},
		Description: "blue",
		Likes:       []string{},
		CreatedAt:   now,
	}, got)
}

func TestPhoto_ToggleLike(t *testing.T) {
	tests := []struct {
		name      string
		likes     []string
		username  string
		wantLiked bool
		wantLikes []string
	}{
		{name: "first like", likes: []string{}, username: "bob", wantLiked: true, wantLikes: []string{"bob"}},
		{name: "second like from another user", likes: []string{"bob"}, username: "carol", wantLiked: true, wantLikes: []string{"bob", "carol"}},
		{name: "unlike", likes: []string{"bob", "carol"}, username: "bob", wantLiked: false, wantLikes: []string{"carol"}},
		{name: "nil likes", likes: nil, username: "bob", wantLiked: true, wantLikes: []string{"bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := &Photo{Likes: tt.likes}
			assert.Equal(t, tt.wantLiked, photo.ToggleLike(tt.username))
			assert.Equal(t, tt.wantLikes, photo.Likes)
		})
	}
}

func TestPhoto_ToggleLikeIsInvolution(t *testing.T) {
	photo := &Photo{Likes: []string{"carol", "dave"}}
	original := append([]string(nil), photo.Likes...)

	photo.ToggleLike("bob")
	assert.True(t, photo.HasLike("bob"))
	photo.ToggleLike("bob")

	assert.ElementsMatch(t, original, photo.Likes)
	assert.False(t, photo.HasLike("bob"))
}

func TestPhoto_NormalizeEncodesEmptyArrays(t *testing.T) {
	photo := &Photo{ID: "1"}
	photo.Normalize()

	data, err := json.Marshal(photo)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tags":[]`)
	assert.Contains(t, string(data), `"likes":[]`)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	photos := []Photo{
		{ID: "first", CreatedAt: base},
		{ID: "third", CreatedAt: base.Add(2 * time.Second)},
		{ID: "second", CreatedAt: base.Add(time.Second)},
		{ID: "second-tie", CreatedAt: base.Add(time.Second)},
	}

	SortNewestFirst(photos)

	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"third", "second", "second-tie", "first"}, ids)
}
