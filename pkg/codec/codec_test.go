package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/scribedb/scribe/pkg/core"
)

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 20).Draw(t, "count")

		notes := make([]core.Note, 0, count)
		seen := map[int64]bool{}
		for i := 0; i < count; i++ {
			id := rapid.Int64Range(1, 1<<53).Filter(func(v int64) bool {
				return !seen[v]
			}).Draw(t, "id")
			seen[id] = true

			n := core.Note{
				ID:       id,
				Title:    rapid.String().Draw(t, "title"),
				Content:  rapid.String().Draw(t, "content"),
				Category: rapid.String().Draw(t, "category"),
				Date:     rapid.String().Draw(t, "date"),
				Favorite: rapid.Bool().Draw(t, "pref"),
			}
			if rapid.Bool().Draw(t, "hasDrawing") {
				drawing := rapid.String().Draw(t, "drawing")
				n.Drawing = &drawing
			}
			notes = append(notes, n)
		}

		data, err := EncodeNotes(notes)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeNotes(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		assert.Equal(t, notes, decoded)
	})
}

func TestDecodeNotes_EmptyInput(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("  \n"), []byte("null")} {
		notes, err := DecodeNotes(data)
		require.NoError(t, err)
		assert.Empty(t, notes)
		assert.NotNil(t, notes)
	}
}

func TestDecodeNotes_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"not json":      []byte("{{{"),
		"wrong type":    []byte(`{"id": 1}`),
		"truncated":     []byte(`[{"id": 1, "title":`),
		"trailing data": []byte(`[] []`),
		"missing id":    []byte(`[{"title": "a"}]`),
		"duplicate id":  []byte(`[{"id": 7, "title": "a"}, {"id": 7, "title": "b"}]`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeNotes(data)
			assert.ErrorIs(t, err, core.ErrCorrupt)
		})
	}
}

func TestDecodeNotes_LegacyShape(t *testing.T) {
	// The exact wire shape produced by the mobile app.
	data := []byte(`[{"id":1717171717171,"title":"Buy milk","content":"2 liters","category":"Home","date":"01/06/2024","pref":false,"drawing":null}]`)

	notes, err := DecodeNotes(data)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	assert.Equal(t, int64(1717171717171), notes[0].ID)
	assert.Equal(t, "Buy milk", notes[0].Title)
	assert.Equal(t, "Home", notes[0].Category)
	assert.Nil(t, notes[0].Drawing)
}

func TestCategories_RoundTrip(t *testing.T) {
	cats := []string{"Home", "Work", core.CategoryNone}

	data, err := EncodeCategories(cats)
	require.NoError(t, err)

	decoded, err := DecodeCategories(data)
	require.NoError(t, err)
	assert.Equal(t, cats, decoded)
}

func TestDecodeCategories_EmptyAndMalformed(t *testing.T) {
	cats, err := DecodeCategories(nil)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = DecodeCategories([]byte(`{"oops": true}`))
	assert.ErrorIs(t, err, core.ErrCorrupt)
}
