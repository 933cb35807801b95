package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withIDs(ids ...Value) []Record {
	out := make([]Record, len(ids))
	for i, id := range ids {
		out[i] = NewRecord(F("id", id))
	}
	return out
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    string
	}{
		{"empty collection", nil, "B001"},
		{"skips malformed", withIDs(String("B001"), String("B004"), String("BX")), "B005"},
		{"only malformed", withIDs(String("X12"), String("B"), String("b003")), "B001"},
		{"ignores non-string ids", withIDs(Int(9), String("B002")), "B003"},
		{"ignores signs", withIDs(String("B-5"), String("B+7")), "B001"},
		{"grows past width", withIDs(String("B999")), "B1000"},
		{"record without id", []Record{NewRecord(F("title", String("t")))}, "B001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextID(tc.records, "B", 3))
		})
	}
}

func TestKind_NewTemplate(t *testing.T) {
	now := time.Date(2027, 3, 4, 10, 0, 0, 0, time.UTC)
	records := withIDs(String("B001"), String("B004"), String("BX"))

	tpl, err := BlogPosts.NewTemplate(records, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "date", "author", "summary", "content", "tags"}, tpl.Keys())
	assert.Equal(t, "B005", tpl.Text("id", ""))
	assert.Equal(t, "2027-03-04", tpl.Text("date", ""))
	tags, _ := tpl.Get("tags")
	assert.True(t, tags.Equal(Strings("new", "draft")))
	assert.Len(t, records, 3, "template creation must not touch the collection")

	_, err = Predictions.NewTemplate(records, now)
	assert.ErrorIs(t, err, ErrNotCreatable)
}

func TestKind_Labels(t *testing.T) {
	pred := NewRecord(F("id", String("P1")), F("text", String(strings.Repeat("À", 60))))
	assert.Equal(t, "P1: "+strings.Repeat("À", 50)+"...", Predictions.Label(pred))
	assert.Equal(t, "N/A: No Text...", Predictions.Label(NewRecord()))

	post := NewRecord(F("id", String("B002")), F("title", String("Hello")))
	assert.Equal(t, "B002: Hello", BlogPosts.Label(post))
	assert.Equal(t, "N/A: No Title", BlogPosts.Label(NewRecord()))

	assert.Equal(t, []string{"content"}, BlogPosts.Excluded())
	assert.Nil(t, Predictions.Excluded())
}

func TestKindByName(t *testing.T) {
	k, ok := KindByName("blogPosts")
	require.True(t, ok)
	assert.Equal(t, "blog", k.Name)

	k, ok = KindByName("predictions")
	require.True(t, ok)
	assert.Equal(t, "Predictions", k.Title)

	_, ok = KindByName("pages")
	assert.False(t, ok)
}

func TestCollection(t *testing.T) {
	c := NewCollection(BlogPosts, withIDs(String("B001")))
	assert.True(t, c.HasID("B001"))
	assert.False(t, c.HasID("B002"))

	idx := c.Append(NewRecord(F("id", String("B002")), F("title", String("Two"))))
	assert.Equal(t, 1, idx)
	assert.Equal(t, "B002: Two", c.Label(1))

	require.NoError(t, c.Replace(0, NewRecord(F("id", String("B001")), F("title", String("One")))))
	assert.Equal(t, []string{"B001: One", "B002: Two"}, c.Labels())

	_, err := c.At(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Replace(-1, NewRecord()), ErrIndexOutOfRange)
	assert.Equal(t, "", c.Label(9))
}
