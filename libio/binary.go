package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader keeps the first error it encounters. Once Err is set every read is a no-op
// returning false, so a sequence of reads only needs a single check at the end.
type BinaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	// Byte offset after the last successful read
	Index int
	// Byte offset before the last read, useful in error messages
	LastIndex int
	Err       error
	buf       []byte
}

func NewBinaryReader(src io.Reader) *BinaryReader {
	return &BinaryReader{Src: src, Order: binary.LittleEndian}
}

func (br *BinaryReader) ReadBytes(n int) (ok bool) {
	if br.Err != nil {
		return false
	}

	if cap(br.buf) < n {
		br.buf = make([]byte, n)
	}
	br.buf = br.buf[:n]

	br.LastIndex = br.Index
	nread, err := io.ReadFull(br.Src, br.buf)
	br.Index += nread
	br.Err = err
	return err == nil
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	return br.Src.Read(p)
}

func (br *BinaryReader) ReadUInt32(v *uint32) (ok bool) {
	if !br.ReadBytes(4) {
		return false
	}
	*v = br.Order.Uint32(br.buf)
	return true
}

// ReadRef decodes a fixed size value or slice of fixed size values into data.
func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	br.LastIndex = br.Index
	err := binary.Read(br.Src, br.Order, data)
	br.Err = err
	if err == nil {
		br.Index += binary.Size(data)
	}
	return err == nil
}

// BinaryWriter is the sticky error counterpart of BinaryReader.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	// Bytes written so far
	Index int
	Err   error
}

func NewBinaryWriter(dst io.Writer) *BinaryWriter {
	return &BinaryWriter{Dst: dst, Order: binary.LittleEndian}
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}
	n, err := bw.Dst.Write(p)
	bw.Index += n
	bw.Err = err
	return err == nil
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	return bw.Dst.Write(p)
}

func (bw *BinaryWriter) WriteUInt32(v uint32) (ok bool) {
	var buf [4]byte
	bw.Order.PutUint32(buf[:], v)
	return bw.WriteBytes(buf[:])
}

func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	err := binary.Write(bw.Dst, bw.Order, data)
	bw.Err = err
	if err == nil {
		bw.Index += binary.Size(data)
	}
	return err == nil
}
