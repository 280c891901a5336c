package routing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIdHeader = "X-Request-Id"

type Router interface {
	Get() []*Definition
}

type Definition struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

type Manager struct {
	mux *mux.Router
}

func NewManager() *Manager {
	m := mux.NewRouter()
	m.Use(identify)

	return &Manager{
		mux: m,
	}
}

func (m *Manager) Add(router Router) {
	for _, d := range router.Get() {
		m.mux.HandleFunc(d.Path, d.Handler)
	}
}

func (m *Manager) Get() *mux.Router {
	return m.mux
}

// identify gives every transfer an id to follow it in the logs
func identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(requestIdHeader)
		if _, err := uuid.Parse(requestId); err != nil {
			requestId = uuid.New().String()
		}
		w.Header().Set(requestIdHeader, requestId)

		next.ServeHTTP(w, r)
	})
}
