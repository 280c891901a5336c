package routing

import (
	"fmt"
	"net/http"

	"github.com/freakmaxi/kertish-serve/serve-node/manager"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const fileNameVar = "fileName"

type fileRouter struct {
	serving manager.Serving
	framing manager.Framing
	prefix  string
	logger  *zap.Logger

	definitions []*Definition
}

func NewFileRouter(serving manager.Serving, framing manager.Framing, prefix string, logger *zap.Logger) Router {
	pR := &fileRouter{
		serving:     serving,
		framing:     framing,
		prefix:      prefix,
		logger:      logger,
		definitions: make([]*Definition, 0),
	}
	pR.setup()

	return pR
}

func (f *fileRouter) setup() {
	f.definitions =
		append(f.definitions,
			&Definition{
				Path:    fmt.Sprintf("%s/size/{%s:.+}", f.prefix, fileNameVar),
				Handler: f.size,
			},
			&Definition{
				Path:    fmt.Sprintf("%s/partialdownload/{%s:.+}", f.prefix, fileNameVar),
				Handler: f.partialDownload,
			},
		)
}

func (f *fileRouter) Get() []*Definition {
	return f.definitions
}

func (f *fileRouter) size(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()

	switch r.Method {
	case "GET":
		f.handleSize(w, r)
	default:
		w.WriteHeader(406)
	}
}

func (f *fileRouter) partialDownload(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()

	switch r.Method {
	case "GET":
		f.handleDownload(w, r, true)
	case "HEAD":
		f.handleDownload(w, r, false)
	default:
		w.WriteHeader(406)
	}
}

func (f *fileRouter) fileName(r *http.Request) string {
	return mux.Vars(r)[fileNameVar]
}

func (f *fileRouter) requestLogger(w http.ResponseWriter, r *http.Request) *zap.Logger {
	return f.logger.With(
		zap.String("requestId", w.Header().Get(requestIdHeader)),
		zap.String("fileName", f.fileName(r)),
	)
}

var _ Router = &fileRouter{}
