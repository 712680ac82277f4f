package openai

import (
	"bytes"
	"io"
)

// Streamed responses arrive as marker-prefixed frames terminated by a
// blank line, closed by a literal sentinel frame.
var (
	frameDelim   = []byte("\n\n")
	dataPrefix   = []byte("data:")
	doneSentinel = []byte("[DONE]")
)

type streamState int

const (
	// streamOpen pulls the next chunk from the transport.
	streamOpen streamState = iota
	// streamDraining yields frames already buffered before reading more.
	streamDraining
	// streamClosed: sentinel seen, transport EOF, or Close called.
	streamClosed
)

// Stream incrementally decodes server-sent events of type T from a live
// response body. It is single-pass and non-restartable: events are
// produced once, in arrival order, until the sentinel frame or transport
// EOF, after which Recv returns io.EOF.
//
// The transport may split one event across any number of chunks, or pack
// several events into one; the stream reassembles frames either way. A
// decode failure on one event is returned from that Recv call only — the
// stream stays open and the caller decides whether to keep pulling.
type Stream[T any] struct {
	body    io.ReadCloser
	state   streamState
	pending []byte   // tail bytes that do not yet complete a frame
	frames  [][]byte // complete frames not yet delivered
	chunk   []byte
}

// NewStream wraps an open response body. Endpoint Stream* methods call
// this; it is exported for callers driving a raw response handle.
func NewStream[T any](body io.ReadCloser) *Stream[T] {
	return &Stream[T]{body: body, chunk: make([]byte, 4096)}
}

// Recv blocks until the next event is available and returns it decoded.
// It returns io.EOF once the stream has terminated.
func (s *Stream[T]) Recv() (*T, error) {
	for {
		// Drain buffered frames before asking the transport for more.
		for len(s.frames) > 0 {
			frame := s.frames[0]
			s.frames = s.frames[1:]
			if len(s.frames) == 0 && s.state == streamDraining {
				s.state = streamOpen
			}

			payload, ok := framePayload(frame)
			if !ok {
				continue
			}
			if bytes.Equal(payload, doneSentinel) {
				// Authoritative end of stream. Anything the transport
				// still has buffered is discarded.
				s.shutdown()
				return nil, io.EOF
			}
			return decodeEnvelope[T](payload, 0, "")
		}

		if s.state == streamClosed {
			return nil, io.EOF
		}

		n, err := s.body.Read(s.chunk)
		if n > 0 {
			s.pending = append(s.pending, s.chunk[:n]...)
			s.splitFrames()
		}
		if err != nil {
			if err == io.EOF {
				s.state = streamClosed
				s.body.Close()
				continue
			}
			return nil, &Error{Op: "read stream", Message: err.Error(), Err: ErrNetwork}
		}
	}
}

// Close releases the underlying connection. It is safe to call at any
// point, including before the sentinel has arrived.
func (s *Stream[T]) Close() error {
	if s.state == streamClosed {
		return nil
	}
	s.state = streamClosed
	s.frames = nil
	s.pending = nil
	return s.body.Close()
}

func (s *Stream[T]) shutdown() {
	s.state = streamClosed
	s.frames = nil
	s.pending = nil
	s.body.Close()
}

// splitFrames moves every blank-line-terminated frame out of the pending
// buffer. The incomplete tail stays pending for the next chunk.
func (s *Stream[T]) splitFrames() {
	for {
		i := bytes.Index(s.pending, frameDelim)
		if i < 0 {
			return
		}
		frame := make([]byte, i)
		copy(frame, s.pending[:i])
		s.pending = s.pending[i+len(frameDelim):]
		s.frames = append(s.frames, frame)
		if s.state == streamOpen {
			s.state = streamDraining
		}
	}
}

// framePayload extracts the data payload from one frame. Comment and
// event-type lines are skipped; multiple data lines join with a newline.
func framePayload(frame []byte) ([]byte, bool) {
	var parts [][]byte
	for _, line := range bytes.Split(frame, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if !bytes.HasPrefix(line, dataPrefix) {
			continue
		}
		parts = append(parts, bytes.TrimSpace(line[len(dataPrefix):]))
	}
	if len(parts) == 0 {
		return nil, false
	}
	return bytes.Join(parts, []byte("\n")), true
}
