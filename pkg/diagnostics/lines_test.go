package diagnostics

import (
	"testing"

	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	r := queue.Record{
		Service:    queue.ServiceSonarr,
		InstanceID: "main",
		ID:         nullable.NewNullableWithValue[int64](7),
		StatusMessages: []queue.StatusMessage{
			{Title: "Show.S01E01.mkv", Messages: []string{"No files found are eligible for import", " "}},
			{Title: "", Messages: []string{"Download stalled"}},
		},
		ErrorMessage: "Something happened",
	}

	lines := Collect(r)
	require.Len(t, lines, 4)

	assert.Equal(t, StatusLine{Key: "sonarr:main:7:title:0", Text: "Show.S01E01.mkv", Tone: ToneInfo}, lines[0])
	assert.Equal(t, StatusLine{Key: "sonarr:main:7:message:0:0", Text: "No files found are eligible for import", Tone: ToneInfo}, lines[1])
	assert.Equal(t, StatusLine{Key: "sonarr:main:7:message:1:0", Text: "Download stalled", Tone: ToneWarning}, lines[2])
	assert.Equal(t, StatusLine{Key: "sonarr:main:7:error", Text: "Something happened", Tone: ToneError}, lines[3], "error message is always an error")
}

func TestCollect_Empty(t *testing.T) {
	assert.Empty(t, Collect(queue.Record{}))
}

func TestSummarize(t *testing.T) {
	t.Run("dedups and drops release names", func(t *testing.T) {
		lines := []StatusLine{
			{Key: "a", Text: "No files found", Tone: ToneInfo},
			{Key: "b", Text: "No files found", Tone: ToneInfo},
			{Key: "c", Text: "Show.S01E01.720p.WEB", Tone: ToneInfo},
		}

		got := Summarize(lines)
		require.Len(t, got, 1)
		assert.Equal(t, "No files found", got[0].Text)
		assert.Equal(t, 2, got[0].Count)
		assert.Equal(t, "a", got[0].Key)
	})

	t.Run("case insensitive and whitespace normalized", func(t *testing.T) {
		lines := []StatusLine{
			{Key: "a", Text: "  Download   Stalled ", Tone: ToneWarning},
			{Key: "b", Text: "download stalled", Tone: ToneInfo},
		}

		got := Summarize(lines)
		require.Len(t, got, 1)
		assert.Equal(t, "Download   Stalled", got[0].Text)
		assert.Equal(t, 2, got[0].Count)
		assert.Equal(t, ToneWarning, got[0].Tone, "tone never lowers")
	})

	t.Run("escalates tone", func(t *testing.T) {
		lines := []StatusLine{
			{Key: "a", Text: "Check client", Tone: ToneInfo},
			{Key: "b", Text: "check client", Tone: ToneWarning},
			{Key: "c", Text: "CHECK CLIENT", Tone: ToneError},
			{Key: "d", Text: "check client", Tone: ToneInfo},
		}

		got := Summarize(lines)
		require.Len(t, got, 1)
		assert.Equal(t, ToneError, got[0].Tone)
		assert.Equal(t, 4, got[0].Count)
	})

	t.Run("keeps first seen order", func(t *testing.T) {
		lines := []StatusLine{
			{Key: "a", Text: "second"},
			{Key: "b", Text: "first"},
			{Key: "c", Text: "second"},
			{Key: "d", Text: "episode.mkv"},
			{Key: "e", Text: ""},
		}

		got := Summarize(lines)
		require.Len(t, got, 2)
		assert.Equal(t, "second", got[0].Text)
		assert.Equal(t, ToneInfo, got[0].Tone)
		assert.Equal(t, "first", got[1].Text)
	})

	t.Run("counts sum to kept lines", func(t *testing.T) {
		lines := []StatusLine{
			{Text: "a"}, {Text: "b"}, {Text: "A"}, {Text: "c"}, {Text: "B"}, {Text: "Release.S01E01.1080p.mkv"},
		}

		got := Summarize(lines)
		assert.LessOrEqual(t, len(got), len(lines))

		total := 0
		for _, l := range got {
			total += l.Count
		}
		assert.Equal(t, 5, total)
	})
}

func TestDiagnose(t *testing.T) {
	r := queue.Record{
		StatusMessages: []queue.StatusMessage{
			{Title: "Show.S01E01.1080p.WEB-DL-GRP", Messages: []string{"Not an upgrade for existing episode file(s)"}},
			{Title: "Show.S01E02.1080p.WEB-DL-GRP", Messages: []string{"Not an upgrade for existing episode file(s)"}},
		},
	}

	got := Diagnose(r)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
}
