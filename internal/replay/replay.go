// Package replay records the input of a game session frame by frame, so a
// session can be fed back through a fresh world and land in the same place.
//
// A recording is a stream of length-prefixed protobuf messages: one header,
// then one record per frame that could change the world.
package replay

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"brickbreaker/internal/breakout"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const Version = 1

// Larger records than this are treated as corruption.
const maxRecordSize = 1 << 10

const (
	maxFPS = 1000
	// Longest run of unrecorded frames Play will fill in, in seconds.
	maxGapSeconds = 60 * 60
)

var (
	ErrMalformed = errors.New("malformed recording")
	ErrVersion   = errors.New("unsupported recording version")
)

// Header field numbers.
const (
	headerVersion protowire.Number = 1
	headerSession protowire.Number = 2
	headerWidth   protowire.Number = 3
	headerHeight  protowire.Number = 4
	headerFPS     protowire.Number = 5
)

// Record field numbers.
const (
	recordFrame protowire.Number = 1
	recordInput protowire.Number = 2
)

const (
	flagLeft uint64 = 1 << iota
	flagRight
	flagStart
	flagPause
	flagRestart
)

type Header struct {
	Version uint32
	Session uuid.UUID
	Width   float32
	Height  float32
	FPS     int
}

type Record struct {
	// Frame is the world's frame counter after the input was applied.
	Frame uint64
	Input breakout.Input
}

// ShouldRecord reports whether a frame needs to be kept. Frames outside of
// play with no input leave the world untouched, so they can be skipped.
func ShouldRecord(from breakout.State, in breakout.Input) bool {
	return from == breakout.StatePlay || !in.IsZero()
}

func encodeHeader(h Header) []byte {
	var b []byte
	b = protowire.AppendTag(b, headerVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.Version))
	b = protowire.AppendTag(b, headerSession, protowire.BytesType)
	b = protowire.AppendBytes(b, h.Session[:])
	b = protowire.AppendTag(b, headerWidth, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(h.Width))
	b = protowire.AppendTag(b, headerHeight, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(h.Height))
	b = protowire.AppendTag(b, headerFPS, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.FPS))
	return b
}

func decodeHeader(b []byte) (Header, error) {
	var h Header
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == headerVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.Version = uint32(v)
			return n, nil
		case num == headerSession && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				id, err := uuid.FromBytes(v)
				if err != nil {
					return 0, fmt.Errorf("%w: session id: %v", ErrMalformed, err)
				}
				h.Session = id
			}
			return n, nil
		case num == headerWidth && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			h.Width = math.Float32frombits(v)
			return n, nil
		case num == headerHeight && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			h.Height = math.Float32frombits(v)
			return n, nil
		case num == headerFPS && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.FPS = int(min(v, maxFPS+1))
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return Header{}, err
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if !positive(h.Width) || !positive(h.Height) {
		return Header{}, fmt.Errorf("%w: screen %vx%v", ErrMalformed, h.Width, h.Height)
	}
	if h.FPS <= 0 || h.FPS > maxFPS {
		return Header{}, fmt.Errorf("%w: fps %d", ErrMalformed, h.FPS)
	}
	return h, nil
}

// positive is false for NaN, infinities, zero and negatives.
func positive(v float32) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 1)
}

func encodeRecord(r Record) []byte {
	var b []byte
	b = protowire.AppendTag(b, recordFrame, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Frame)
	b = protowire.AppendTag(b, recordInput, protowire.VarintType)
	b = protowire.AppendVarint(b, inputFlags(r.Input))
	return b
}

func decodeRecord(b []byte) (Record, error) {
	var r Record
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == recordFrame && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Frame = v
			return n, nil
		case num == recordInput && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Input = flagsInput(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return r, err
}

// consumeFields walks every field in b. Unknown fields are skipped by the
// callback returning protowire.ConsumeFieldValue.
func consumeFields(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		n, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func inputFlags(in breakout.Input) uint64 {
	var f uint64
	if in.Left {
		f |= flagLeft
	}
	if in.Right {
		f |= flagRight
	}
	if in.Start {
		f |= flagStart
	}
	if in.Pause {
		f |= flagPause
	}
	if in.Restart {
		f |= flagRestart
	}
	return f
}

func flagsInput(f uint64) breakout.Input {
	return breakout.Input{
		Left:    f&flagLeft != 0,
		Right:   f&flagRight != 0,
		Start:   f&flagStart != 0,
		Pause:   f&flagPause != 0,
		Restart: f&flagRestart != 0,
	}
}

type Writer struct {
	w *bufio.Writer
}

// NewWriter writes h to w and returns a Writer for the frames that follow.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	rw := &Writer{w: bufio.NewWriter(w)}
	if err := rw.writeMessage(encodeHeader(h)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return rw, nil
}

func (rw *Writer) Write(r Record) error {
	if err := rw.writeMessage(encodeRecord(r)); err != nil {
		return fmt.Errorf("write frame %d: %w", r.Frame, err)
	}
	return nil
}

func (rw *Writer) Flush() error {
	return rw.w.Flush()
}

func (rw *Writer) writeMessage(msg []byte) error {
	buf := protowire.AppendVarint(nil, uint64(len(msg)))
	buf = append(buf, msg...)
	_, err := rw.w.Write(buf)
	return err
}

type Reader struct {
	r      *bufio.Reader
	Header Header
}

// NewReader reads and checks the header of a recording.
func NewReader(r io.Reader) (*Reader, error) {
	rr := &Reader{r: bufio.NewReader(r)}
	msg, err := rr.readMessage()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := decodeHeader(msg)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rr.Header = h
	return rr, nil
}

// Next returns the next record, or io.EOF once the recording is exhausted.
func (rr *Reader) Next() (Record, error) {
	msg, err := rr.readMessage()
	if err != nil {
		return Record{}, err
	}
	return decodeRecord(msg)
}

func (rr *Reader) readMessage() ([]byte, error) {
	size, err := binary.ReadUvarint(rr.r)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: record length: %v", ErrMalformed, err)
	}
	if size > maxRecordSize {
		return nil, fmt.Errorf("%w: record of %d bytes", ErrMalformed, size)
	}
	msg := make([]byte, size)
	if _, err := io.ReadFull(rr.r, msg); err != nil {
		return nil, fmt.Errorf("%w: truncated record: %v", ErrMalformed, err)
	}
	return msg, nil
}

// Play feeds every record in rr through w. Frames missing from the
// recording are played with no input, up to an hour of them at a time. It
// returns the number of records applied.
func Play(rr *Reader, w *breakout.World) (int, error) {
	maxGap := uint64(rr.Header.FPS) * maxGapSeconds
	applied := 0
	for {
		rec, err := rr.Next()
		if err == io.EOF {
			return applied, nil
		}
		if err != nil {
			return applied, err
		}
		if rec.Frame <= w.Frame {
			return applied, fmt.Errorf("%w: frame %d after frame %d", ErrMalformed, rec.Frame, w.Frame)
		}
		if rec.Frame-w.Frame > maxGap {
			return applied, fmt.Errorf("%w: frame %d jumps too far past frame %d", ErrMalformed, rec.Frame, w.Frame)
		}
		for w.Frame+1 < rec.Frame {
			w.Update(breakout.Input{})
		}
		w.Update(rec.Input)
		applied++
	}
}
