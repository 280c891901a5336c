package manager

import (
	"bufio"
	"context"
	"io"

	"github.com/freakmaxi/kertish-serve/basics/common"
	"github.com/freakmaxi/kertish-serve/basics/errors"
	pkgerrors "github.com/pkg/errors"
)

const bufferSize = 1024 * 64
const readChunkSize = 1024 * 1024 // 1mb

// Stream reads exactly the bytes of the resolved range from the resource reader.
// The reader is closed on every exit path. The returned buffer is always r.Size long.
func Stream(ctx context.Context, reader io.ReadCloser, r *common.ResolvedRange, length int64) ([]byte, error) {
	defer func() { _ = reader.Close() }()

	buffer := make([]byte, r.Size)
	if r.Size == 0 {
		return buffer, nil
	}

	if r.Full(length) {
		if err := fill(ctx, bufio.NewReaderSize(reader, bufferSize), buffer); err != nil {
			return nil, err
		}
		return buffer, nil
	}

	input, err := skip(reader, r.Start)
	if err != nil {
		return nil, err
	}

	if err := fill(ctx, input, buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// skip positions the stream at offset. Seekable sources jump directly, the others
// are discarded through the buffered reader
func skip(reader io.Reader, offset int64) (io.Reader, error) {
	if seeker, ok := reader.(io.Seeker); ok {
		if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
			return nil, pkgerrors.WithMessage(errors.ErrResourceUnavailable, err.Error())
		}
		return bufio.NewReaderSize(reader, bufferSize), nil
	}

	input := bufio.NewReaderSize(reader, bufferSize)
	discarded, err := io.CopyN(io.Discard, input, offset)
	if err != nil {
		return nil, pkgerrors.WithMessagef(errors.ErrResourceUnavailable, "skipped %d of %d bytes: %s", discarded, offset, err)
	}
	return input, nil
}

// fill reads until the buffer is full. It stops early when the context is done,
// a read fails or the source has no more data
func fill(ctx context.Context, reader io.Reader, buffer []byte) error {
	remaining := len(buffer)

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		offset := len(buffer) - remaining
		limit := remaining
		if limit > readChunkSize {
			limit = readChunkSize
		}

		read, err := reader.Read(buffer[offset : offset+limit])
		remaining -= read

		if err != nil {
			if err == io.EOF {
				break
			}
			return pkgerrors.WithMessage(errors.ErrResourceUnavailable, err.Error())
		}
		if read == 0 {
			break
		}
	}

	if remaining > 0 {
		return pkgerrors.WithMessagef(errors.ErrResourceUnavailable, "source exhausted with %d bytes remaining", remaining)
	}
	return nil
}
