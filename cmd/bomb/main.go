package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/Tk21111/termdraw/session"
	"github.com/Tk21111/termdraw/ws"
	"go.uber.org/zap"
)

func main() {
	var (
		wsURL    = flag.String("url", "ws://localhost:8080/ws", "ws url")
		room     = flag.String("room", "", "room id to join; empty creates one")
		rate     = flag.Int("rate", 200, "strokes per second")
		duration = flag.Duration("duration", 10*time.Second, "how long to draw")
		width    = flag.Int("width", 80, "canvas width")
		height   = flag.Int("height", 24, "canvas height")
		length   = flag.Int("stroke", 5, "pixels per stroke")
	)
	flag.Parse()

	if err := logx.Init(""); err != nil {
		panic(err)
	}
	defer logx.Sync()

	if err := bomb(*wsURL, *room, *rate, *duration, *width, *height, *length); err != nil {
		logx.L.Error("bomb", zap.Error(err))
		logx.Sync()
		os.Exit(1)
	}
}

func bomb(url, room string, rate int, duration time.Duration, width, height, length int) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", rate)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := ws.Dial(ctx, url, config.DefaultSettings().WriteTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	var res session.Result
	if room == "" {
		res, err = session.Create(ctx, conn)
	} else {
		res, err = session.Join(ctx, conn, room)
	}
	if err != nil {
		return err
	}

	colour := middleware.ColorFromUserID(res.Identity.UserID)
	log := logx.L.With(append(res.Identity.Fields(), zap.Stringer("colour", colour))...)
	log.Info("connected", zap.String("url", url))

	// the hub drops peers that stop reading, so keep draining echoes
	go func() {
		for {
			if _, err := conn.Receive(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	end := time.After(duration)
	sent := 0

	for {
		select {
		case <-end:
			log.Info("bombardment_finished", zap.Int("pixels", sent))
			return nil

		case <-ticker.C:
			for _, p := range ws.RandomStroke(width, height, length, colour) {
				if err := conn.Send(config.Draw(p)); err != nil {
					return fmt.Errorf("write after %d pixels: %w", sent, err)
				}
				sent++
			}
		}
	}
}
