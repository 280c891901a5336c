package routing

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"
)

func (f *fileRouter) handleSize(w http.ResponseWriter, r *http.Request) {
	size, err := f.serving.Size(f.fileName(r))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.WriteHeader(404)
			return
		} else if errors.Is(err, os.ErrInvalid) {
			w.WriteHeader(422)
			return
		}
		w.WriteHeader(500)
		f.requestLogger(w, r).Error("Size request is failed", zap.Error(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)

	if _, err := w.Write([]byte(strconv.FormatInt(size, 10))); err != nil {
		f.requestLogger(w, r).Warn("Response of size request is failed", zap.Error(err))
	}
}
