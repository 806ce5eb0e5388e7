package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tk21111/termdraw/api"
	"github.com/Tk21111/termdraw/db"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/Tk21111/termdraw/ws"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	var (
		addr = flag.String("addr", ":8080", "listen address")
		dsn  = flag.String("dsn", db.MemoryDSN, "sqlite data source")
	)
	flag.Parse()

	if err := logx.Init(""); err != nil {
		panic(err)
	}
	defer logx.Sync()

	if err := serve(*addr, *dsn); err != nil {
		logx.L.Error("server_exit", zap.Error(err))
		logx.Sync()
		os.Exit(1)
	}
}

func serve(addr, dsn string) (err error) {
	store, err := db.NewWriter(dsn)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(store))
	mux.Handle("/rooms", api.GetRoom(store))

	srv := &http.Server{
		Addr:    addr,
		Handler: middleware.Chain(mux, middleware.Recover, middleware.Logging),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logx.L.Info("listening", zap.String("addr", addr), zap.String("dsn", dsn))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// websocket peers are hijacked and not waited for; they die with the process
	err = srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		err = multierr.Append(err, serveErr)
	}
	logx.L.Info("stopped")
	return err
}
