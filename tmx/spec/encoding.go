package spec

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encoding identifies how a tile-grid payload is stored inside a data tag.
type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	EncodingTags             // one child tag per cell, no payload
	EncodingCSV
	EncodingBase64
)

// Compression identifies the optional compression of a base64 payload.
type Compression uint8

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZlib
)

var ErrUnknownEncoding = errors.New("libtmx: unknown encoding")
var ErrUnknownCompression = errors.New("libtmx: unknown compression")
var ErrCellCount = errors.New("libtmx: cell count mismatch")
var ErrGridSize = errors.New("libtmx: decoded grid size mismatch")

// ParseEncoding maps the value of an encoding attribute; the empty string
// means tag-per-cell storage.
func ParseEncoding(value string) (Encoding, error) {
	switch value {
	case "":
		return EncodingTags, nil
	case "csv":
		return EncodingCSV, nil
	case "base64":
		return EncodingBase64, nil
	}
	return EncodingUnknown, fmt.Errorf("%w: %q", ErrUnknownEncoding, value)
}

// ParseCompression maps the value of a compression attribute; the empty
// string means an uncompressed payload.
func ParseCompression(value string) (Compression, error) {
	switch value {
	case "":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zlib":
		return CompressionZlib, nil
	}
	return CompressionUnknown, fmt.Errorf("%w: %q", ErrUnknownCompression, value)
}

func Compress(data []byte, compression Compression) ([]byte, error) {
	if compression == CompressionNone {
		return data, nil
	}

	var buffer bytes.Buffer
	var writer io.WriteCloser
	switch compression {
	case CompressionGzip:
		writer = gzip.NewWriter(&buffer)
	case CompressionZlib:
		writer = zlib.NewWriter(&buffer)
	default:
		return nil, fmt.Errorf("%w (%v)", ErrUnknownCompression, compression)
	}

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	return buffer.Bytes(), nil
}

func Decompress(data []byte, compression Compression) ([]byte, error) {
	if compression == CompressionNone {
		return data, nil
	}

	var reader io.ReadCloser
	var err error
	switch compression {
	case CompressionGzip:
		reader, err = gzip.NewReader(bytes.NewReader(data))
	case CompressionZlib:
		reader, err = zlib.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w (%v)", ErrUnknownCompression, compression)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer reader.Close()

	result, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return result, nil
}

// DecodeGrid decodes a CSV or base64 tile-grid payload into exactly
// width*height raw cell values in row-major order. Tag-per-cell grids never
// carry a payload and are assembled by the caller.
func DecodeGrid(payload []byte, encoding Encoding, compression Compression, width, height int) ([]GID, error) {
	switch encoding {
	case EncodingCSV:
		return decodeCSV(payload, width, height)
	case EncodingBase64:
		return decodeBase64(payload, compression, width, height)
	}
	return nil, fmt.Errorf("%w (%v)", ErrUnknownEncoding, encoding)
}

// EncodeGrid is the inverse of DecodeGrid.
func EncodeGrid(cells []GID, encoding Encoding, compression Compression) ([]byte, error) {
	switch encoding {
	case EncodingCSV:
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = strconv.FormatUint(uint64(cell), 10)
		}
		return []byte(strings.Join(parts, ",")), nil

	case EncodingBase64:
		words := make([]byte, 4*len(cells))
		for i, cell := range cells {
			binary.LittleEndian.PutUint32(words[4*i:], uint32(cell))
		}
		compressed, err := Compress(words, compression)
		if err != nil {
			return nil, err
		}
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(compressed)))
		base64.StdEncoding.Encode(encoded, compressed)
		return encoded, nil
	}
	return nil, fmt.Errorf("%w (%v)", ErrUnknownEncoding, encoding)
}

func decodeCSV(payload []byte, width, height int) ([]GID, error) {
	tokens := strings.Split(string(payload), ",")
	if got, want := len(tokens), width*height; got != want {
		return nil, fmt.Errorf("%w: %v values for %vx%v grid", ErrCellCount, got, width, height)
	}

	cells := make([]GID, len(tokens))
	for i, token := range tokens {
		value, err := strconv.ParseUint(strings.TrimSpace(token), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("libtmx: invalid cell value %q: %w", token, err)
		}
		cells[i] = GID(value)
	}
	return cells, nil
}

func decodeBase64(payload []byte, compression Compression, width, height int) ([]GID, error) {
	trimmed := strings.TrimSpace(string(payload))
	compressed, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("libtmx: invalid base64 payload: %w", err)
	}

	words, err := Decompress(compressed, compression)
	if err != nil {
		return nil, err
	}
	if got, want := len(words), 4*width*height; got != want {
		return nil, fmt.Errorf("%w: %v bytes for %vx%v grid", ErrGridSize, got, width, height)
	}

	cells := make([]GID, width*height)
	for i := range cells {
		cells[i] = GID(binary.LittleEndian.Uint32(words[4*i:]))
	}
	return cells, nil
}
