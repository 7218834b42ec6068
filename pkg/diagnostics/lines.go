package diagnostics

import (
	"fmt"
	"strings"

	"github.com/kasuboski/arrqueue/pkg/queue"
)

// StatusLine is one diagnostic fact pulled from a record. Key only keeps list
// rendering stable, it plays no part in equality.
type StatusLine struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// CompactLine is a deduplicated status line with the number of times it was seen
type CompactLine struct {
	StatusLine
	Count int `json:"count"`
}

// Collect extracts every raw diagnostic line of a record in order: each status
// message title followed by its own messages, then the top level error message.
func Collect(r queue.Record) []StatusLine {
	identity := r.Identity()
	lines := make([]StatusLine, 0, len(r.StatusMessages)+1)

	for i, sm := range r.StatusMessages {
		if strings.TrimSpace(sm.Title) != "" {
			lines = append(lines, StatusLine{
				Key:  fmt.Sprintf("%s:title:%d", identity, i),
				Text: sm.Title,
				Tone: ResolveTone(sm.Title),
			})
		}

		for j, m := range sm.Messages {
			if strings.TrimSpace(m) == "" {
				continue
			}
			lines = append(lines, StatusLine{
				Key:  fmt.Sprintf("%s:message:%d:%d", identity, i, j),
				Text: m,
				Tone: ResolveTone(m),
			})
		}
	}

	if strings.TrimSpace(r.ErrorMessage) != "" {
		lines = append(lines, StatusLine{
			Key:  fmt.Sprintf("%s:error", identity),
			Text: r.ErrorMessage,
			Tone: ToneError,
		})
	}

	return lines
}

// Summarize drops file and release names then folds repeated lines together,
// counting repeats and keeping the most severe tone seen. Output follows the
// order each distinct line first appeared in.
func Summarize(lines []StatusLine) []CompactLine {
	out := make([]CompactLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || HasFileExtension(text) || IsReleaseName(text) {
			continue
		}

		key := normalize(text)
		if i, ok := index[key]; ok {
			out[i].Count++
			out[i].Tone = Escalate(out[i].Tone, line.Tone)
			continue
		}

		index[key] = len(out)
		out = append(out, CompactLine{
			StatusLine: StatusLine{Key: line.Key, Text: text, Tone: Escalate(ToneInfo, line.Tone)},
			Count:      1,
		})
	}

	return out
}

// Diagnose collects and summarizes the lines of a single record
func Diagnose(r queue.Record) []CompactLine {
	return Summarize(Collect(r))
}

func normalize(text string) string {
	return fold(strings.Join(strings.Fields(text), " "))
}
