package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdeck/showdeck/internal/repository"
	"github.com/showdeck/showdeck/internal/runofshow"
)

func TestCheckPayloadOpaqueTypes(t *testing.T) {
	t.Parallel()

	got, msg := checkPayload(repository.TypePatchSheet, json.RawMessage(`{"channels":[]}`))
	assert.Empty(t, msg)
	assert.JSONEq(t, `{"channels":[]}`, string(got))

	_, msg = checkPayload(repository.TypeStagePlot, json.RawMessage(`{"items":`))
	assert.Equal(t, "payload is not valid JSON", msg)

	_, msg = checkPayload(repository.TypePatchSheet, nil)
	assert.Equal(t, "payload is required", msg)
}

func TestCheckPayloadRunOfShowNormalizes(t *testing.T) {
	t.Parallel()

	raw := `{"name":"Corporate AM","items":[
		{"id":"a","type":"item","itemNumber":"99","startTime":"09:00","duration":"10:00"},
		{"id":"b","type":"item","itemNumber":"99"}
	]}`
	got, msg := checkPayload(repository.TypeRunOfShow, json.RawMessage(raw))
	require.Empty(t, msg)

	var tl runofshow.ShowTimeline
	require.NoError(t, json.Unmarshal(got, &tl))
	require.Len(t, tl.Entries, 2)
	// stored payload carries renumbered items, whatever the client sent
	assert.Equal(t, "1", tl.Entries[0].ItemNumber)
	assert.Equal(t, "2", tl.Entries[1].ItemNumber)
}

func TestCheckPayloadKeepsColumnColors(t *testing.T) {
	t.Parallel()

	src := runofshow.New("Awards Night")
	src.AddEntry(runofshow.KindItem, -1)
	src.SetColumnColor(runofshow.ColAudio, "#445566")
	raw, err := json.Marshal(src)
	require.NoError(t, err)

	got, msg := checkPayload(repository.TypeRunOfShow, raw)
	require.Empty(t, msg)

	var back runofshow.ShowTimeline
	require.NoError(t, json.Unmarshal(got, &back))
	// a save must store the aggregate field-for-field; column colors are the
	// easy one to lose because no entry carries them
	assert.Equal(t, "#445566", back.DefaultColumnColors[runofshow.ColAudio])
}

func TestCheckPayloadAcceptsEmptyShow(t *testing.T) {
	t.Parallel()

	// a freshly created show serializes with a nil entry list; saving it
	// must succeed
	raw, err := json.Marshal(runofshow.New("Fresh Show"))
	require.NoError(t, err)

	got, msg := checkPayload(repository.TypeRunOfShow, raw)
	require.Empty(t, msg)

	var back runofshow.ShowTimeline
	require.NoError(t, json.Unmarshal(got, &back))
	assert.Equal(t, "Fresh Show", back.Name)
	assert.Empty(t, back.Entries)
}

func TestCheckPayloadRunOfShowRejectsWhole(t *testing.T) {
	t.Parallel()

	_, msg := checkPayload(repository.TypeRunOfShow, json.RawMessage(`{"items":[]}`))
	assert.Contains(t, msg, "name")

	_, msg = checkPayload(repository.TypeRunOfShow,
		json.RawMessage(`{"name":"x","items":[{"id":"a","type":"intermission"}]}`))
	assert.Contains(t, msg, "type")
}

func TestNameFromPayload(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Gala Night", nameFromPayload(json.RawMessage(`{"name":"  Gala Night "}`)))
	assert.Empty(t, nameFromPayload(json.RawMessage(`{"title":"x"}`)))
	assert.Empty(t, nameFromPayload(json.RawMessage(`not json`)))
}
