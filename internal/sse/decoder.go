// internal/sse/decoder.go
// Frame decoder for the backend's text/event-stream responses.
// Turns arbitrarily chunked text into an ordered sequence of frame
// payloads; knows nothing about the JSON inside them.
package sse

import "strings"

// DataPrefix marks a valid frame. Anything else between delimiters
// (comments, event names, noise) is dropped.
const DataPrefix = "data: "

// Decoder accumulates stream chunks and extracts complete frames.
// Frames are delimited by a blank line; a delimiter may arrive split
// across chunks, so the unconsumed tail is retained between calls.
type Decoder struct {
	tail   string
	closed bool
}

// NewDecoder creates a decoder for a single stream.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk and returns the payloads of all frames completed
// by it, in the order their delimiters appear. Frames not starting with
// the data prefix are discarded.
func (d *Decoder) Feed(chunk string) []string {
	if d.closed {
		return nil
	}

	d.tail += chunk

	var payloads []string
	for {
		i, width := blankLine(d.tail)
		if i < 0 {
			break
		}

		frame := d.tail[:i]
		d.tail = d.tail[i+width:]

		if payload, ok := framePayload(frame); ok {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

// End signals stream closure. Any unterminated trailing partial frame
// is discarded, never surfaced as an event. Further Feed calls are no-ops.
func (d *Decoder) End() {
	d.tail = ""
	d.closed = true
}

// blankLine finds the earliest frame delimiter (LF LF or CRLF CRLF) and
// returns its offset and width.
func blankLine(s string) (int, int) {
	lf := strings.Index(s, "\n\n")
	crlf := strings.Index(s, "\r\n\r\n")

	switch {
	case lf < 0 && crlf < 0:
		return -1, 0
	case crlf < 0:
		return lf, 2
	case lf < 0 || crlf < lf:
		return crlf, 4
	default:
		return lf, 2
	}
}

// framePayload validates a raw frame and strips the data prefix.
func framePayload(frame string) (string, bool) {
	frame = strings.TrimSpace(frame)
	if !strings.HasPrefix(frame, DataPrefix) {
		return "", false
	}
	payload := strings.TrimSpace(frame[len(DataPrefix):])
	if payload == "" {
		return "", false
	}
	return payload, true
}
