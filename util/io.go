package util

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// BufferReader/BufferWriter and the Read/Write/*ToFile helpers below are
// grounded directly on the teacher's util/io.go: every persisted component
// in this module (transit.Data, splitgraph.SplitStopEventGraph,
// edgeflags.Matrix, ptl.Data) is stored as a sequence of fixed-width
// little-endian fields behind these helpers, exactly as the teacher's
// comps/*.go _Store/_Load pairs do. GTFS/CSV import is out of this
// module's scope (spec.md §1), so the teacher's reflection-based CSV
// decoder is not carried over.

func NewBufferReader(data []byte) BufferReader {
	return BufferReader{reader: bytes.NewReader(data)}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{buffer: &buffer}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

func WriteToFile[T any](value T, file string) error {
	writer := NewBufferWriter()
	Write[T](writer, value)
	return os.WriteFile(file, writer.Bytes(), 0o644)
}

func WriteArrayToFile[T any](value Array[T], file string) error {
	writer := NewBufferWriter()
	WriteArray[T](writer, value)
	return os.WriteFile(file, writer.Bytes(), 0o644)
}

func ReadFromFile[T any](file string) (T, error) {
	var zero T
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return zero, fmt.Errorf("file not found: %s", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return zero, err
	}
	reader := NewBufferReader(data)
	return Read[T](reader), nil
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %s", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	reader := NewBufferReader(data)
	return ReadArray[T](reader), nil
}
