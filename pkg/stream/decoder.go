package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/banterhq/banter/pkg/chat"
)

// ErrMalformedLine marks a newline-terminated feed line that is not a
// valid message record.
var ErrMalformedLine = errors.New("malformed feed line")

// Decoder turns the raw bytes of one NDJSON response into message
// records. It owns all per-stream state: the accumulated text, the
// bytes of a multi-byte rune split across chunk boundaries, and the
// scan cursor over confirmed-complete lines.
//
// A record is emitted only once its line is newline-terminated (or at
// Flush, when the stream is over and the tail can be judged final).
// The cursor never advances past a malformed line, so every later call
// re-parses the same region and reports the same error, matching a
// full-buffer re-parse without its O(total) cost per chunk.
type Decoder struct {
	pending []byte          // incomplete trailing UTF-8 sequence held for the next chunk
	buf     strings.Builder // accumulated text; grows for the stream's lifetime
	cursor  int             // byte offset of the first unconsumed line
	records []chat.Message
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends one network chunk and parses any lines it completed.
func (d *Decoder) Feed(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	data := append(d.pending, p...)
	d.pending = nil

	if keep := incompleteTailLen(data); keep > 0 {
		d.pending = append([]byte(nil), data[len(data)-keep:]...)
		data = data[:len(data)-keep]
	}

	d.buf.Write(data)
	return d.scan()
}

// Flush finishes the stream: any held-back bytes join the buffer and a
// final unterminated line, if present and non-blank, is parsed as a
// complete record.
func (d *Decoder) Flush() error {
	if len(d.pending) > 0 {
		// Invalid bytes degrade to replacement runes during unmarshal,
		// the same way truncated content degrades anywhere else.
		d.buf.Write(d.pending)
		d.pending = nil
	}

	if err := d.scan(); err != nil {
		return err
	}

	tail := strings.TrimSpace(d.buf.String()[d.cursor:])
	if tail == "" {
		d.cursor = d.buf.Len()
		return nil
	}

	var msg chat.Message
	if err := json.Unmarshal([]byte(tail), &msg); err != nil {
		return fmt.Errorf("%w %s: %v", ErrMalformedLine, snippet(tail), err)
	}
	d.records = append(d.records, msg)
	d.cursor = d.buf.Len()
	return nil
}

// Records returns every record parsed so far, in wire order, covering
// the entire feed seen during this stream. The decoder does not
// deduplicate; identity reconciliation belongs to the store.
func (d *Decoder) Records() []chat.Message {
	out := make([]chat.Message, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Decoder) scan() error {
	text := d.buf.String()
	for {
		nl := strings.IndexByte(text[d.cursor:], '\n')
		if nl < 0 {
			return nil
		}

		line := strings.TrimSpace(text[d.cursor : d.cursor+nl])
		if line == "" {
			d.cursor += nl + 1
			continue
		}

		var msg chat.Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			return fmt.Errorf("%w %s: %v", ErrMalformedLine, snippet(line), err)
		}
		d.records = append(d.records, msg)
		d.cursor += nl + 1
	}
}

// incompleteTailLen reports how many trailing bytes form the start of a
// UTF-8 sequence whose continuation has not arrived yet.
func incompleteTailLen(b []byte) int {
	n := len(b)
	for i := 1; i <= utf8.UTFMax && i <= n; i++ {
		c := b[n-i]
		if c < utf8.RuneSelf {
			return 0
		}
		if c&0xC0 == 0xC0 { // start byte
			var want int
			switch {
			case c&0xE0 == 0xC0:
				want = 2
			case c&0xF0 == 0xE0:
				want = 3
			case c&0xF8 == 0xF0:
				want = 4
			default:
				return 0 // invalid start byte, nothing to wait for
			}
			if i < want {
				return i
			}
			return 0
		}
		// continuation byte, keep looking for its start
	}
	return 0
}

func snippet(line string) string {
	const max = 80
	if len(line) > max {
		return fmt.Sprintf("%q...", line[:max])
	}
	return fmt.Sprintf("%q", line)
}
