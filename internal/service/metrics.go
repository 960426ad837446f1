// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/wneessen/weather-tui/internal/logger"
)

const (
	metricsPath            = "/metrics"
	metricsShutdownTimeout = 5 * time.Second
)

// serveMetrics exposes the Prometheus metrics on addr until stop is called. It returns the
// address the server listens on.
func (s *Service) serveMetrics(ctx context.Context, addr string) (listen string, stop func(), err error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on metrics address %q: %w", addr, err)
	}

	mux := stdhttp.NewServeMux()
	mux.Handle(metricsPath, s.metrics.Handler())
	server := &stdhttp.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			s.logger.Error("metrics server failed", logger.Err(err))
		}
	}()
	listen = listener.Addr().String()
	s.logger.Info("serving metrics", slog.String("addr", listen), slog.String("path", metricsPath))

	return listen, func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to shut down metrics server", logger.Err(err))
		}
	}, nil
}
