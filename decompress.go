package gwasqc

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType checks the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(lead []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(lead) < len(sig) {
			continue
		}
		for position := range sig {
			if lead[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser sniffs the compression type of r and, if
// recognized, wraps it in the matching decompressor. The input does not need
// to be seekable, so this works for both local files and Google Storage
// streams.
func MaybeDecompressReadCloser(r io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	lead, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch DetectDataType(lead) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &wrappedReadCloser{gz, r}, nil
	case DataTypeZip:
		return &wrappedReadCloser{zipstream.NewReader(br), r}, nil
	case DataTypeBZip2:
		return &wrappedReadCloser{bzip2.NewReader(br), r}, nil
	case DataTypeXZ:
		xzr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		return &wrappedReadCloser{xzr, r}, nil
	case DataTypeZ:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &wrappedReadCloser{zr, r}, nil
	}

	// No compression detected; assume plain text.
	return &wrappedReadCloser{br, r}, nil
}

// wrappedReadCloser reads decompressed bytes while closing the original
// underlying stream.
type wrappedReadCloser struct {
	io.Reader
	orig io.Closer
}

func (c *wrappedReadCloser) Close() error {
	return c.orig.Close()
}
