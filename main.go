package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/render"
	"github.com/Tk21111/termdraw/session"
	"github.com/Tk21111/termdraw/ws"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termdraw:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	settings := config.DefaultSettings()

	if err := logx.Init(settings.LogPath); err != nil {
		return err
	}
	defer logx.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := bufio.NewReader(os.Stdin)

	serverURL := ""
	if len(os.Args) > 1 {
		serverURL = os.Args[1]
	} else if serverURL, err = prompt(stdin, "Please supply a server URL to connect to: "); err != nil {
		return err
	}

	ctx = logx.With(ctx, zap.String("server", serverURL))
	log := logx.From(ctx)

	conn, err := ws.Dial(ctx, serverURL, settings.WriteTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrConnection, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			// the session is over either way
			log.Debug("conn_close", zap.Error(cerr))
		}
	}()

	hs := session.Handshaker{
		Transport: conn,
		Ask: func(retry bool) (string, error) {
			if retry {
				fmt.Println("Room not found.")
			}
			return prompt(stdin, "Please enter the room id (leave empty to create a new one): ")
		},
		Timeout: settings.HandshakeTimeout,
	}

	res, err := hs.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Your user id is %s\n", res.Identity.UserID)
	if res.Created {
		fmt.Printf("Your room id is %s, go put this somewhere\n", res.Identity.RoomID)
	}
	if _, err := prompt(stdin, "(press enter to continue)"); err != nil {
		return err
	}

	screen, err := render.OpenScreen()
	if err != nil {
		return err
	}
	guard, err := render.Acquire(screen)
	if err != nil {
		return err
	}
	defer guard.Release()
	defer func() {
		if p := recover(); p != nil {
			guard.Release()
			panic(p)
		}
	}()

	err = session.Run(ctx, screen, render.NewRenderer(screen), conn, res, settings)
	// the terminal must be back in cooked mode before the error is printed
	guard.Release()

	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}

// prompt prints msg and reads one line. A closed stdin ends the program.
func prompt(in *bufio.Reader, msg string) (string, error) {
	fmt.Print(msg)

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
