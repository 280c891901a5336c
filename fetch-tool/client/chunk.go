package client

import (
	"fmt"

	"github.com/freakmaxi/kertish-serve/basics/errors"
)

// Chunk is an inclusive byte window of the remote file
type Chunk struct {
	Index  int
	Begins int64
	Ends   int64
}

func (c Chunk) Size() int64 {
	return c.Ends - c.Begins + 1
}

func (c Chunk) RangeHeader() string {
	return fmt.Sprintf("bytes=%d-%d", c.Begins, c.Ends)
}

// SplitChunks partitions [0, length) into count consecutive chunks. The last chunk
// takes the remainder. Files shorter than count are split into single bytes
func SplitChunks(length int64, count int) ([]Chunk, error) {
	if count <= 0 {
		return nil, errors.ErrChunkCount
	}
	if length <= 0 {
		return []Chunk{}, nil
	}
	if int64(count) > length {
		count = int(length)
	}

	roundSize := length / int64(count)
	mod := length % int64(count)

	chunks := make([]Chunk, 0, count)
	begins := int64(0)
	for i := 0; i < count; i++ {
		size := roundSize
		if i == count-1 {
			size += mod
		}

		chunks = append(chunks, Chunk{
			Index:  i,
			Begins: begins,
			Ends:   begins + size - 1,
		})
		begins += size
	}

	return chunks, nil
}
