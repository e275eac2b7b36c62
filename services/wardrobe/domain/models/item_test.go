package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_JSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		want := At(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC))
		data, err := json.Marshal(want)
		require.NoError(t, err)
		require.Equal(t, `"2025-01-15T10:30:00Z"`, string(data))

		var got Timestamp
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, got.Equal(want), "got %v, want %v", got, want)
	})

	t.Run("zero encodes as null", func(t *testing.T) {
		data, err := json.Marshal(Timestamp{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	for _, raw := range []string{`null`, `"yesterday"`, `12345`, `""`} {
		t.Run("tolerates "+raw, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(raw), &ts))
			assert.True(t, ts.IsZero(), "got %v", ts)
		})
	}
}

func TestID_UnmarshalNumber(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`1705314600000`), &id))
	assert.Equal(t, ID("1705314600000"), id, "numeric ids are kept as text")
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestItem_LegacyFields(t *testing.T) {
	raw := `{"id":1,"name":"Shirt","category":"shirt","color":"white",
		"dateAdded":"2024-03-01T08:00:00.000Z","lastModified":"2024-03-02T08:00:00.000Z",
		"imageData":"data:image/png;base64,AA==","usageCount":-2}`

	var item Item
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	assert.Equal(t, ID("1"), item.ID)
	assert.Equal(t, "2024-03-01", item.CreatedAt.Format(time.DateOnly))
	assert.Equal(t, "2024-03-02", item.UpdatedAt.Format(time.DateOnly))
	assert.Len(t, item.Images, 1, "imageData becomes the first image")
	assert.Zero(t, item.UsageCount, "negative usage clamps to 0")
}

func TestItem_AddedAtFallsBackToUpdatedAt(t *testing.T) {
	updated := At(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	item := Item{UpdatedAt: updated}
	assert.True(t, item.AddedAt().Equal(updated.Time), "got %v", item.AddedAt())
}

func TestItem_CloneIsDeep(t *testing.T) {
	orig := Item{Tags: []string{"work"}, Images: []string{"a"}}
	c := orig.Clone()
	c.Tags[0] = "sport"
	c.Images[0] = "b"
	assert.Equal(t, []string{"work"}, orig.Tags)
	assert.Equal(t, []string{"a"}, orig.Images)
}

func TestOutfit_ItemReferences(t *testing.T) {
	raw := `{"id":"o1","name":"Office","items":["a",7,{"id":"b","name":"embedded"}],"dateCreated":"2024-01-01T00:00:00Z"}`

	var o Outfit
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	assert.Equal(t, []ID{"a", "7", "b"}, o.Items)
	assert.False(t, o.CreatedAt.IsZero(), "dateCreated populates CreatedAt")
}

func TestParseDataURI(t *testing.T) {
	img, err := ParseDataURI("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "hello", string(img.Data))
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", img.DataURI())

	for _, bad := range []string{"", "/media/images/a.png", "data:image/png,plain", "data:image/png;base64,@@@"} {
		_, err := ParseDataURI(bad)
		assert.Error(t, err, "ParseDataURI(%q)", bad)
	}
	assert.True(t, IsDataURI("data:;base64,AA=="))
	assert.False(t, IsDataURI("images/x.png"))
}
