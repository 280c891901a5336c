package manager

import (
	"context"
	"os"

	"github.com/freakmaxi/kertish-serve/basics/common"
	"github.com/freakmaxi/kertish-serve/basics/errors"
	"github.com/freakmaxi/kertish-serve/serve-node/filesystem"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Serving answers the size and partial download requests of the node
type Serving interface {
	Size(name string) (int64, error)
	Download(name string, rangeHeader *string) (Download, error)
}

type serving struct {
	store  filesystem.Manager
	logger *zap.Logger
}

func NewServing(store filesystem.Manager, logger *zap.Logger) Serving {
	return &serving{
		store:  store,
		logger: logger,
	}
}

func (s *serving) Size(name string) (int64, error) {
	if !common.ValidateName(name) {
		return 0, os.ErrInvalid
	}

	if !s.store.Exists(name) {
		return 0, os.ErrNotExist
	}

	return s.store.Size(name)
}

func (s *serving) Download(name string, rangeHeader *string) (Download, error) {
	if !common.ValidateName(name) {
		return nil, os.ErrInvalid
	}

	if !s.store.Exists(name) {
		return nil, os.ErrNotExist
	}

	file, err := s.store.File(name)
	if err != nil {
		return nil, err
	}

	resolved, err := common.ParseRange(rangeHeader, file.Size)
	if err != nil {
		return nil, err
	}

	return newDownload(file, resolved, func(ctx context.Context) ([]byte, error) {
		reader, err := s.store.Open(name)
		if err != nil {
			if err == os.ErrNotExist {
				return nil, err
			}
			return nil, pkgerrors.WithMessage(errors.ErrResourceUnavailable, err.Error())
		}

		s.logger.Debug(
			"Streaming file content",
			zap.String("fileName", name),
			zap.Int64("begins", resolved.Start),
			zap.Int64("ends", resolved.End),
			zap.Int64("size", resolved.Size),
		)

		return Stream(ctx, reader, resolved, file.Size)
	}), nil
}

var _ Serving = &serving{}
