package libio_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"learn-gl/libio"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineFrame(strips, perStrip int) *libio.Frame {
	frame := &libio.Frame{Kind: libio.FrameKindLineStrips}
	for s := 0; s < strips; s++ {
		frame.Ranges = append(frame.Ranges, libio.FrameRange{Start: int32(len(frame.Vertices)), Count: int32(perStrip)})
		for i := 0; i < perStrip; i++ {
			frame.Vertices = append(frame.Vertices, mgl32.Vec3{float32(s), float32(i) * 0.5, -1})
		}
	}
	return frame
}

func TestFrameTriangles(t *testing.T) {
	frame := &libio.Frame{
		Kind: libio.FrameKindTriangles,
		Vertices: []mgl32.Vec3{
			{0, 0, 0}, {0.5, 0.866, 0}, {1, 0, 0},
			{-1, -1, 0}, {-0.5, -0.134, 0}, {0, -1, 0},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, libio.EncodeFrame(buf, frame, libio.FrameCompressionNone))
	assert.Equal(t, 6*4+6*12, buf.Len())

	decoded, err := libio.DecodeFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, frame.Kind, decoded.Kind)
	assert.Equal(t, frame.Vertices, decoded.Vertices)
	assert.Empty(t, decoded.Ranges)
}

func TestFrameLineStripsLz4(t *testing.T) {
	frame := lineFrame(75, 200)

	plain := &bytes.Buffer{}
	require.NoError(t, libio.EncodeFrame(plain, frame, libio.FrameCompressionNone))
	compressed := &bytes.Buffer{}
	require.NoError(t, libio.EncodeFrame(compressed, frame, libio.FrameCompressionLz4))
	assert.Less(t, compressed.Len(), plain.Len())

	header, err := libio.DecodeFrameHeader(bytes.NewReader(compressed.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(75*200), header.VertexCount)
	assert.Equal(t, uint32(75), header.RangeCount)
	assert.Equal(t, libio.FrameCompressionLz4, header.Compression)

	decoded, err := libio.DecodeFrame(compressed)
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}

func TestFrameSharedWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	bw := libio.NewBinaryWriter(buf)
	require.NoError(t, libio.EncodeFrame(bw, lineFrame(2, 3), libio.FrameCompressionNone))
	require.NoError(t, libio.EncodeFrame(bw, lineFrame(4, 5), libio.FrameCompressionLz4))
	assert.Equal(t, buf.Len(), bw.Index)

	br := libio.NewBinaryReader(buf)
	first, err := libio.DecodeFrame(br)
	require.NoError(t, err)
	assert.Len(t, first.Ranges, 2)
	second, err := libio.DecodeFrame(br)
	require.NoError(t, err)
	assert.Len(t, second.Vertices, 20)
}

func TestFrameInvalid(t *testing.T) {
	err := libio.EncodeFrame(io.Discard, &libio.Frame{Kind: libio.FrameKindTriangles, Vertices: make([]mgl32.Vec3, 4)}, libio.FrameCompressionNone)
	assert.ErrorIs(t, err, libio.ErrInvalidFrame)

	frame := lineFrame(2, 3)
	frame.Ranges[1].Count = 4
	err = libio.EncodeFrame(io.Discard, frame, libio.FrameCompressionNone)
	assert.ErrorIs(t, err, libio.ErrInvalidFrame)

	err = libio.EncodeFrame(io.Discard, lineFrame(1, 1), libio.FrameCompression(7))
	assert.ErrorIs(t, err, libio.ErrInvalidFrame)
}

func TestDecodeFrameCorrupt(t *testing.T) {
	valid := &bytes.Buffer{}
	require.NoError(t, libio.EncodeFrame(valid, lineFrame(3, 10), libio.FrameCompressionNone))
	data := valid.Bytes()

	t.Run("magic", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[0] ^= 0xff
		_, err := libio.DecodeFrame(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, libio.ErrInvalidFrame)
	})

	t.Run("version", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		binary.LittleEndian.PutUint32(corrupt[4:], 2)
		_, err := libio.DecodeFrame(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, libio.ErrInvalidFrame)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := libio.DecodeFrame(bytes.NewReader(data[:len(data)-5]))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := libio.DecodeFrame(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("range", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		// count of the last range
		binary.LittleEndian.PutUint32(corrupt[len(corrupt)-4:], 11)
		_, err := libio.DecodeFrame(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, libio.ErrInvalidFrame)
	})
}
