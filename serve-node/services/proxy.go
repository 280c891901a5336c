package services

import (
	"context"
	"net/http"
	"time"

	"github.com/freakmaxi/kertish-serve/serve-node/routing"
	"go.uber.org/zap"
)

const shutdownTimeout = time.Second * 30

type Proxy struct {
	server *http.Server
	logger *zap.Logger
}

func NewProxy(bindAddr string, manager *routing.Manager, readTimeout time.Duration, writeTimeout time.Duration, logger *zap.Logger) *Proxy {
	return &Proxy{
		server: &http.Server{
			Addr:              bindAddr,
			Handler:           manager.Get(),
			ReadHeaderTimeout: readTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
		logger: logger,
	}
}

// Start serves until the context is done and then shuts the server down gracefully
func (p *Proxy) Start(ctx context.Context) error {
	failed := make(chan error, 1)

	go func() {
		p.logger.Sugar().Infof("Serve Node is running on %s", p.server.Addr)
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	p.logger.Info("Serve Node is shutting down")

	shutdownCtx, cancelFunc := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelFunc()

	return p.server.Shutdown(shutdownCtx)
}
