package routing

import (
	"context"
	"errors"
	"net/http"
	"os"

	errors2 "github.com/freakmaxi/kertish-serve/basics/errors"
	"go.uber.org/zap"
)

const notFoundMessage = "Requested resource is not found."

func (f *fileRouter) handleDownload(w http.ResponseWriter, r *http.Request, body bool) {
	logger := f.requestLogger(w, r)

	var rangeHeader *string
	if values, has := r.Header["Range"]; has && len(values) > 0 {
		rangeHeader = &values[0]
	}

	download, err := f.serving.Download(f.fileName(r), rangeHeader)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Error("File does not exist")
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(404)
			if body {
				_, _ = w.Write([]byte(notFoundMessage))
			}
			return
		} else if errors.Is(err, os.ErrInvalid) {
			w.WriteHeader(422)
			return
		} else if errors.Is(err, errors2.ErrMalformedRange) || errors.Is(err, errors2.ErrUnsatisfiableRange) {
			logger.Debug("Range request is rejected", zap.Strings("range", r.Header["Range"]), zap.Error(err))
			f.applyUnsatisfied(w, r)
			w.WriteHeader(416)
			return
		}
		w.WriteHeader(500)
		logger.Error("Download request is failed", zap.Error(err))
		return
	}

	file, resolved := download.File(), download.Range()

	if !body {
		f.framing.Apply(w.Header(), file, resolved)
		w.WriteHeader(f.framing.Status(download.Partial()))
		return
	}

	content, err := download.Read(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Debug("Client left before the transfer", zap.Error(err))
			return
		} else if errors.Is(err, os.ErrNotExist) {
			w.WriteHeader(404)
			return
		}
		w.WriteHeader(500)
		logger.Error(
			"Reading file content is failed",
			zap.Int64("begins", resolved.Start),
			zap.Int64("ends", resolved.End),
			zap.Error(err),
		)
		return
	}

	f.framing.Apply(w.Header(), file, resolved)
	w.WriteHeader(f.framing.Status(download.Partial()))

	if _, err := w.Write(content); err != nil {
		logger.Warn(
			"Streaming file content is failed",
			zap.Int64("begins", resolved.Start),
			zap.Int64("ends", resolved.End),
			zap.Error(err),
		)
	}
}

func (f *fileRouter) applyUnsatisfied(w http.ResponseWriter, r *http.Request) {
	if !f.framing.RFC {
		return
	}

	size, err := f.serving.Size(f.fileName(r))
	if err != nil {
		return
	}
	f.framing.ApplyUnsatisfied(w.Header(), size)
}
