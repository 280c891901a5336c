package manager

import (
	"context"

	"github.com/freakmaxi/kertish-serve/basics/common"
)

type Download interface {
	File() *common.File
	Range() *common.ResolvedRange
	Partial() bool

	Read(ctx context.Context) ([]byte, error)
}

type download struct {
	file          *common.File
	resolved      *common.ResolvedRange
	streamHandler func(ctx context.Context) ([]byte, error)
}

func newDownload(file *common.File, resolved *common.ResolvedRange, streamHandler func(ctx context.Context) ([]byte, error)) Download {
	return &download{
		file:          file,
		resolved:      resolved,
		streamHandler: streamHandler,
	}
}

func (d *download) File() *common.File {
	return d.file
}

func (d *download) Range() *common.ResolvedRange {
	return d.resolved
}

func (d *download) Partial() bool {
	return !d.resolved.Full(d.file.Size)
}

func (d *download) Read(ctx context.Context) ([]byte, error) {
	return d.streamHandler(ctx)
}

var _ Download = &download{}
