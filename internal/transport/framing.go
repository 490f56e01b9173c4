// Package transport implements the length-prefixed JSON wire protocol of
// spec.md §4.1: each message is a 4-byte big-endian length followed by
// exactly that many bytes of UTF-8 JSON. Grounded on
// original_source/src/server.rs's read_u32/write_u32 framing; the teacher
// repo frames on newlines instead (internal/ipc/server.go's
// bufio.Reader.ReadBytes('\n')), so this package departs from the
// teacher's wire format to match the spec while keeping its
// goroutine-per-connection, buffered-I/O style.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxFrameLen bounds a single frame to guard against memory exhaustion
// from a malicious or corrupt length prefix. Large enough for cover-art
// payloads (spec.md §4.1).
const MaxFrameLen = 16 * 1024 * 1024

// ReadFrame blocks until a full frame is available and returns its
// payload, validated as UTF-8. Any error here is a transport-level
// failure: the caller must close the connection, per spec.md §4.1/§7.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > MaxFrameLen {
		return nil, fmt.Errorf("frame of %d bytes exceeds max %d", n, MaxFrameLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("frame payload is not valid UTF-8")
	}
	return buf, nil
}

// WriteFrame writes length then payload as a single Write so the two
// halves of a frame are never interleaved with another goroutine's frame
// on the same connection (spec.md §4.1's atomicity requirement).
func WriteFrame(w io.Writer, payload []byte) error {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(payload)))
	copy(buf[4:], payload)
	_, err := w.Write(buf)
	return err
}
