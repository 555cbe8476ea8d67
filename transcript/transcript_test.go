package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/history"
	"github.com/hupe1980/meshkit/internal/testutil"
)

func conversation() []core.Message {
	t0 := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	return []core.Message{
		testutil.NewMessageBuilder().Author("user").Topic("drafts").Text("Write the release notes").At(t0).Build(),
		testutil.NewMessageBuilder().Author("planner").Topic("plans").Text("fetching v1.2.0").At(t0.Add(2 * time.Second)).Build(),
		testutil.NewMessageBuilder().Author("fetcher").Topic("drafts").Data(map[string]any{"tag": "v1.2.0"}).At(t0.Add(3 * time.Second)).Build(),
		testutil.NewMessageBuilder().Author("writer").Topic("drafts").Text("Release v1.2.0\nAdds sqlite").At(t0.Add(65 * time.Second)).Build(),
	}
}

func TestFormat(t *testing.T) {
	out := Format(conversation())
	assert.Equal(t,
		"[10:00:00] user (drafts): Write the release notes\n"+
			"[10:00:02] planner (plans): fetching v1.2.0\n"+
			"[10:01:05] writer (drafts): Release v1.2.0\n  Adds sqlite\n",
		out)
}

func TestFormat_Options(t *testing.T) {
	lines := Lines(conversation(), func(o *Options) {
		o.Timestamps = false
		o.Topics = []string{"plans"}
	})
	assert.Equal(t, []string{"planner (plans): fetching v1.2.0"}, lines)

	lines = Lines(conversation(), func(o *Options) {
		o.Location = time.FixedZone("CET", 3600)
		o.MaxTextLen = 5
	})
	require.Len(t, lines, 3)
	assert.Equal(t, "[11:00:00] user (drafts): Wr...", lines[0])
}

func TestFormat_FallbackAuthorAndEmptyTopic(t *testing.T) {
	msg := testutil.NewMessageBuilder().Author("").Topic("").Role("system").Text("boot").Build()
	assert.Equal(t, []string{"[15:04:05] system: boot"}, Lines([]core.Message{msg}))
	assert.Empty(t, Format(nil))
}

func TestRecord(t *testing.T) {
	rec := Record(conversation(), func(o *Options) { o.Topics = []string{"drafts"} })
	assert.Equal(t, 2, rec[FieldMessageCount])
	assert.Equal(t, "2026-03-04T10:00:00Z", rec[FieldStartedAt])
	assert.Equal(t, "2026-03-04T10:01:05Z", rec[FieldEndedAt])
	assert.Contains(t, rec[FieldTranscript], "writer (drafts)")

	msgs, ok := rec[FieldMessages].([]any)
	require.True(t, ok)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "Write the release notes", first["text"])

	empty := Record(nil)
	assert.Equal(t, 0, empty[FieldMessageCount])
	assert.NotContains(t, empty, FieldStartedAt)
}

func TestSave(t *testing.T) {
	store := history.NewMemoryStore()
	require.NoError(t, Save(store, "conv-1", conversation()))

	rec, err := store.Retrieve("conv-1")
	require.NoError(t, err)
	assert.Equal(t, 3, rec[FieldMessageCount])

	err = Save(store, "", conversation())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
