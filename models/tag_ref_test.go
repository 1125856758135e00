package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRefUnmarshal(t *testing.T) {
	id := uuid.New()
	var in ProjectInput
	body := `{"name":"P","tags":["Vue",{"id":"` + id.String() + `"},{"name":"Go"}],"images":[{"url":"u1"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	require.Len(t, in.Tags, 3)
	assert.Equal(t, TagName("Vue"), in.Tags[0])
	assert.True(t, in.Tags[1].IsID())
	assert.Equal(t, id, in.Tags[1].ID)
	assert.Equal(t, TagName("Go"), in.Tags[2])
	assert.Equal(t, []string{"u1"}, in.ImageURLs())
}

func TestTagRefUnmarshalRejectsBadInput(t *testing.T) {
	for _, body := range []string{`{"id":"not-a-uuid"}`, `{}`, `42`} {
		var ref TagRef
		assert.Error(t, json.Unmarshal([]byte(body), &ref), body)
	}
}

func TestTagRefMarshal(t *testing.T) {
	id := uuid.New()
	data, err := json.Marshal([]TagRef{TagName("Vue"), TagID(id)})
	require.NoError(t, err)
	assert.JSONEq(t, `["Vue",{"id":"`+id.String()+`"}]`, string(data))
}
