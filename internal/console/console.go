package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ctchen222/tictactoe-engine/internal/hub"
	"ctchen222/tictactoe-engine/internal/session"
	"ctchen222/tictactoe-engine/pkg/proto"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("console")

type Dialect string

const (
	DialectText Dialect = "text"
	DialectJSON Dialect = "json"
)

type Options struct {
	Dialect Dialect
	Mode    session.Mode
	NoColor bool
}

// Console is the terminal front end. It turns input lines into intents,
// forwards them to the hub and writes the resulting board projection.
type Console struct {
	hub     *hub.Hub
	in      io.Reader
	out     io.Writer
	term    *termenv.Output
	dialect Dialect
	mode    session.Mode
	handle  hub.Handle
}

func New(h *hub.Hub, in io.Reader, out io.Writer, opts Options) *Console {
	termOpts := []termenv.OutputOption{}
	if opts.NoColor {
		termOpts = append(termOpts, termenv.WithProfile(termenv.Ascii))
	}
	dialect := opts.Dialect
	if dialect != DialectJSON {
		dialect = DialectText
	}
	mode := opts.Mode
	if !mode.Valid() {
		mode = session.ModeVsOpponent
	}
	return &Console{
		hub:     h,
		in:      in,
		out:     out,
		term:    termenv.NewOutput(out, termOpts...),
		dialect: dialect,
		mode:    mode,
	}
}

// Run plays until the input ends or a quit intent arrives. Quitting is
// reported by returning nil; the caller decides how to shut down. Cancelling
// ctx returns its error even while a read is still blocked.
func (c *Console) Run(ctx context.Context) error {
	handle, err := c.hub.NewSession(ctx, c.mode)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	c.handle = handle
	defer func() {
		if err := c.hub.CloseSession(context.WithoutCancel(ctx), c.handle); err != nil {
			slog.WarnContext(ctx, "Failed to close session", "session.id", c.handle, "error", err)
		}
	}()

	if c.dialect == DialectText {
		c.printHelp()
	}
	if err := c.emit(c.stateMessage(c.handle)); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.readLines(done)

	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}
		// select picks randomly when both are ready; cancellation wins.
		if err := ctx.Err(); err != nil {
			return err
		}

		if line == "" {
			continue
		}
		if c.dialect == DialectText && isHelp(line) {
			c.printHelp()
			continue
		}

		reply, quit := c.HandleMessage(ctx, []byte(line))
		if err := c.emit(reply); err != nil {
			return err
		}
		if quit {
			slog.InfoContext(ctx, "Shutdown requested", "session.id", c.handle)
			return nil
		}
	}
}

// readLines scans the input in its own goroutine so a blocked read never
// holds up cancellation. The error channel receives the scan result once
// the lines channel is closed.
func (c *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (c *Console) emit(msg *proto.ServerToClientMessage) error {
	if c.dialect == DialectJSON {
		if err := json.NewEncoder(c.out).Encode(msg); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
		return nil
	}
	if _, err := io.WriteString(c.out, c.render(msg)); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}
	return nil
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, helpText)
}

const helpText = `Tic Tac Toe
  0-8            play the cell (row-major, 0 is top left)
  r, restart     start over in the same mode
  n [mode]       new game; mode is manual or opponent
  s, state       show the board
  q, quit        leave
  h, help        show this help
`
