package libio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pierrec/lz4/v4"
)

const MagicNumberFrame = 0x7f3a9e21

type FrameVersion uint32

const (
	FrameVersion1_000_000 = FrameVersion(1_000_000)
)

// Upper bound for counts read from a header, about 3 GiB of vertex data
const maxFrameElements = 1 << 28

var ErrInvalidFrame = errors.New("invalid frame")

type FrameKind uint32

const (
	// Every three vertices form one triangle, Ranges is empty
	FrameKindTriangles = FrameKind(iota)
	// Every range is drawn as one line strip
	FrameKindLineStrips
)

func (k FrameKind) String() string {
	switch k {
	case FrameKindTriangles:
		return "triangles"
	case FrameKindLineStrips:
		return "line strips"
	}
	return fmt.Sprintf("FrameKind(%d)", uint32(k))
}

type FrameCompression uint32

const (
	FrameCompressionNone = FrameCompression(iota)
	FrameCompressionLz4
)

func (c FrameCompression) String() string {
	switch c {
	case FrameCompressionNone:
		return "none"
	case FrameCompressionLz4:
		return "lz4"
	}
	return fmt.Sprintf("FrameCompression(%d)", uint32(c))
}

type FrameHeader struct {
	Check       uint32
	Version     FrameVersion
	Kind        FrameKind
	VertexCount uint32
	RangeCount  uint32
	Compression FrameCompression
}

type FrameRange struct {
	Start int32
	Count int32
}

// Frame is one baked set of vertices, either a triangle list or line strips.
type Frame struct {
	Kind     FrameKind
	Vertices []mgl32.Vec3
	Ranges   []FrameRange
}

func (f *Frame) Validate() error {
	switch f.Kind {
	case FrameKindTriangles:
		if len(f.Vertices)%3 != 0 {
			return fmt.Errorf("%d vertices do not form whole triangles: %w", len(f.Vertices), ErrInvalidFrame)
		}
		if len(f.Ranges) != 0 {
			return fmt.Errorf("triangle frames have no ranges: %w", ErrInvalidFrame)
		}
	case FrameKindLineStrips:
		for i, r := range f.Ranges {
			if r.Start < 0 || r.Count < 0 || int(r.Start)+int(r.Count) > len(f.Vertices) {
				return fmt.Errorf("range %d [%d+%d] exceeds %d vertices: %w", i, r.Start, r.Count, len(f.Vertices), ErrInvalidFrame)
			}
		}
	default:
		return fmt.Errorf("unknown kind %v: %w", f.Kind, ErrInvalidFrame)
	}
	return nil
}

func EncodeFrame(w io.Writer, frame *Frame, compression FrameCompression) (err error) {
	var bw *BinaryWriter
	var ok bool

	if bw, ok = w.(*BinaryWriter); !ok {
		bw = NewBinaryWriter(w)

		defer func() {
			if bw.Err != nil {
				if err == nil {
					err = bw.Err
				} else {
					err = fmt.Errorf("%v: %w", err, bw.Err)
				}
			}
		}()
	}

	if err := frame.Validate(); err != nil {
		return err
	}
	if compression != FrameCompressionNone && compression != FrameCompressionLz4 {
		return fmt.Errorf("unknown compression %v: %w", compression, ErrInvalidFrame)
	}

	header := FrameHeader{
		Check:       MagicNumberFrame,
		Version:     FrameVersion1_000_000,
		Kind:        frame.Kind,
		VertexCount: uint32(len(frame.Vertices)),
		RangeCount:  uint32(len(frame.Ranges)),
		Compression: compression,
	}

	if !bw.WriteRef(header) {
		return fmt.Errorf("could not write frame header: %w", bw.Err)
	}

	payload := &bytes.Buffer{}
	pw := NewBinaryWriter(payload)
	pw.Order = bw.Order
	pw.WriteRef(frame.Vertices)
	pw.WriteRef(frame.Ranges)
	if pw.Err != nil {
		return fmt.Errorf("could not encode frame payload: %w", pw.Err)
	}

	data := payload.Bytes()
	if compression == FrameCompressionLz4 {
		buf := &bytes.Buffer{}
		lzw := lz4.NewWriter(buf)
		err = lzw.Apply(lz4.CompressionLevelOption(lz4.Fast))
		if err == nil {
			_, err = lzw.Write(data)
		}
		if err == nil {
			err = lzw.Close()
		}
		if err != nil {
			return fmt.Errorf("could not compress frame payload: %w", err)
		}
		data = buf.Bytes()
	}

	if !bw.WriteBytes(data) {
		return fmt.Errorf("could not write frame payload: %w", bw.Err)
	}

	return nil
}

func DecodeFrame(r io.Reader) (frame *Frame, err error) {
	var br *BinaryReader
	var ok bool

	if br, ok = r.(*BinaryReader); !ok {
		br = NewBinaryReader(r)

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header, err := decodeFrameHeader(br)
	if err != nil {
		return nil, err
	}

	frame = &Frame{
		Kind:     header.Kind,
		Vertices: make([]mgl32.Vec3, header.VertexCount),
		Ranges:   make([]FrameRange, header.RangeCount),
	}

	payload := br
	if header.Compression == FrameCompressionLz4 {
		payload = NewBinaryReader(lz4.NewReader(br.Src))
		payload.Order = br.Order
	}

	payload.ReadRef(frame.Vertices)
	payload.ReadRef(frame.Ranges)
	if payload.Err != nil {
		return nil, fmt.Errorf("could not read frame payload: %w", payload.Err)
	}

	if err := frame.Validate(); err != nil {
		return nil, err
	}

	return frame, nil
}

// DecodeFrameHeader reads only the header, leaving r positioned at the payload.
func DecodeFrameHeader(r io.Reader) (FrameHeader, error) {
	br := NewBinaryReader(r)
	header, err := decodeFrameHeader(br)
	if err != nil && br.Err != nil {
		return header, fmt.Errorf("%v: %w", err, br.Err)
	}
	return header, err
}

func decodeFrameHeader(br *BinaryReader) (FrameHeader, error) {
	header := FrameHeader{}
	if !br.ReadRef(&header) {
		return header, fmt.Errorf("expected frame header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberFrame {
		return header, fmt.Errorf("frame header is corrupt; byte 0x%08x: %w", br.LastIndex, ErrInvalidFrame)
	}

	if header.Version != FrameVersion1_000_000 {
		return header, fmt.Errorf("frame version %d unsupported; byte 0x%08x: %w", header.Version, br.LastIndex, ErrInvalidFrame)
	}

	if header.Compression != FrameCompressionNone && header.Compression != FrameCompressionLz4 {
		return header, fmt.Errorf("unknown compression %v: %w", header.Compression, ErrInvalidFrame)
	}

	if header.VertexCount > maxFrameElements || header.RangeCount > maxFrameElements {
		return header, fmt.Errorf("frame with %d vertices and %d ranges is too large: %w", header.VertexCount, header.RangeCount, ErrInvalidFrame)
	}

	return header, nil
}
