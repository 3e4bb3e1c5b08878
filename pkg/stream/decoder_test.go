package stream

import (
	"errors"
	"fmt"
	"testing"

	"github.com/banterhq/banter/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lineUser  = `{"role":"user","content":"what is 2+2?","timestamp":"2024-05-01T10:00:00.000001"}`
	lineModel = `{"role":"model","content":"2+2 = 4","timestamp":"2024-05-01T10:00:01.000001"}`
	lineUni   = `{"role":"model","content":"héllo 🦀 日本語","timestamp":"uni-1"}`
)

func TestFeedCompleteLines(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte(lineUser+"\n"+lineModel+"\n")))

	records := d.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "user", records[0].Role)
	assert.Equal(t, "what is 2+2?", records[0].Content)
	assert.Equal(t, "2024-05-01T10:00:00.000001", records[0].Timestamp)
	assert.Equal(t, "model", records[1].Role)
	assert.Equal(t, "2+2 = 4", records[1].Content)
}

// Every possible split of the byte stream must produce the same records,
// including splits inside multi-byte runes and inside lines.
func TestChunkSplitAnywhere(t *testing.T) {
	feed := []byte(lineUser + "\n" + lineUni + "\n")

	for split := 1; split < len(feed); split++ {
		t.Run(fmt.Sprintf("split_%d", split), func(t *testing.T) {
			d := NewDecoder()
			require.NoError(t, d.Feed(feed[:split]))
			require.NoError(t, d.Feed(feed[split:]))
			require.NoError(t, d.Flush())

			records := d.Records()
			require.Len(t, records, 2)
			assert.Equal(t, "what is 2+2?", records[0].Content)
			assert.Equal(t, "héllo 🦀 日本語", records[1].Content)

			store := chat.NewStore()
			store.ApplyAll(records)
			assert.Equal(t, 2, store.Len())
		})
	}
}

func TestPartialTrailingLineWaitsForTerminator(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte(lineUser)))
	assert.Empty(t, d.Records())

	require.NoError(t, d.Feed([]byte("\n")))
	assert.Len(t, d.Records(), 1)
}

func TestBlankLinesSkipped(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte("\n\n"+lineUser+"\n \n\n"+lineModel+"\n")))
	assert.Len(t, d.Records(), 2)
}

func TestCRLFTolerated(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte(lineUser+"\r\n"+lineModel+"\r\n")))

	records := d.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "2+2 = 4", records[1].Content)
}

func TestMalformedLineFailsDecodeStep(t *testing.T) {
	d := NewDecoder()

	err := d.Feed([]byte("{oops}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Empty(t, d.Records())

	// The cursor stays put, so the next chunk re-parses the same region
	// and fails the same way.
	err = d.Feed([]byte(lineUser + "\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Empty(t, d.Records())
}

func TestFlushParsesUnterminatedTail(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte(lineUser)))
	require.NoError(t, d.Flush())

	records := d.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "what is 2+2?", records[0].Content)
}

func TestFlushWithNothingBuffered(t *testing.T) {
	d := NewDecoder()
	require.NoError(t, d.Flush())
	assert.Empty(t, d.Records())

	d = NewDecoder()
	require.NoError(t, d.Feed([]byte(lineUser+"\n  ")))
	require.NoError(t, d.Flush())
	assert.Len(t, d.Records(), 1)
}

func TestFlushMalformedTail(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.Feed([]byte(`{"role":`)))
	err := d.Flush()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
}

// The decoder reports retransmissions verbatim; collapsing them by
// identity is the store's job.
func TestResentTimestampKeptVerbatim(t *testing.T) {
	d := NewDecoder()

	feed := `{"role":"model","content":"2","timestamp":"t1"}` + "\n" +
		`{"role":"model","content":"2+2","timestamp":"t1"}` + "\n" +
		`{"role":"model","content":"2+2 = 4","timestamp":"t1"}` + "\n"
	require.NoError(t, d.Feed([]byte(feed)))

	records := d.Records()
	require.Len(t, records, 3)

	store := chat.NewStore()
	store.ApplyAll(records)
	assert.Equal(t, 1, store.Len())

	msg, ok := store.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "2+2 = 4", msg.Content)
}

func TestIncompleteTailLen(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"empty", nil, 0},
		{"ascii", []byte("abc"), 0},
		{"complete two byte", []byte("é"), 0},
		{"half of two byte", []byte{0xC3}, 1},
		{"complete four byte", []byte("🦀"), 0},
		{"one of four", []byte{0xF0}, 1},
		{"two of four", []byte{0xF0, 0x9F}, 2},
		{"three of four", []byte{0xF0, 0x9F, 0xA6}, 3},
		{"ascii then half rune", []byte{'a', 0xC3}, 1},
		{"stray continuation", []byte{0x80}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, incompleteTailLen(tt.in))
		})
	}
}
