// Package repl implements the CLI collaborator described in spec's
// external-interfaces section: a thin adapter exposing add_order,
// modify_order, delete_order, help and quit over the engine's Go API.
// It is out of the matching core's scope by design (spec treats the
// interactive shell as an external collaborator, not part of the engine
// under specification) but is included here for completeness of the repo
// boundary, grounded on the teacher's cmd/client/client.go flag-parsing
// style and internal/net/server.go's zerolog + tomb lifecycle.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fenrir/internal/engine"
	"fenrir/internal/history"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

const statsInterval = 5 * time.Second

var commands = []string{"add_order", "modify_order", "delete_order", "help", "quit"}

// REPL is a thin line-oriented shell over an *engine.Engine.
type REPL struct {
	engine  *engine.Engine
	history *history.Recorder
	in      *bufio.Scanner
	out     io.Writer
	logger  zerolog.Logger
}

// New constructs a REPL reading commands from in and writing output to out.
// hist may be nil if trade history reporting is not wanted.
func New(eng *engine.Engine, hist *history.Recorder, in io.Reader, out io.Writer, logger zerolog.Logger) *REPL {
	return &REPL{
		engine:  eng,
		history: hist,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run drives the REPL until the user quits, input ends, or ctx is
// cancelled. After cancellation the read loop stops at the next line it
// reads; a read already blocked on the input is not interrupted. It
// supervises two goroutines with a tomb, mirroring the teacher's
// internal/net/server.go lifecycle: a read loop consuming stdin commands,
// and a periodic stats reporter that logs best bid/ask. Neither goroutine
// touches the engine concurrently with the other -- the engine itself is
// still driven strictly sequentially, by the read loop alone; the reporter
// only reads best bid/ask, which is a cheap O(1) snapshot read.
func (r *REPL) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error {
		return r.reportLoop(t)
	})
	t.Go(func() error {
		err := r.readLoop(t)
		t.Kill(nil)
		return err
	})

	return t.Wait()
}

func (r *REPL) reportLoop(t *tomb.Tomb) error {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.Dying():
			return nil
		case <-ticker.C:
			bb, bbOk := r.engine.BestBid()
			ba, baOk := r.engine.BestAsk()
			event := r.logger.Debug()
			if bbOk {
				event = event.Float64("bestBid", bb)
			}
			if baOk {
				event = event.Float64("bestAsk", ba)
			}
			event.Msg("book snapshot")
		}
	}
}

func (r *REPL) readLoop(t *tomb.Tomb) error {
	fmt.Fprintln(r.out, "fenrir matching engine -- type 'help' for commands")
	fmt.Fprint(r.out, "> ")
	for r.in.Scan() {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			fmt.Fprint(r.out, "> ")
			continue
		}

		if quit := r.dispatch(line); quit {
			return nil
		}
		fmt.Fprint(r.out, "> ")
	}
	return r.in.Err()
}

// dispatch executes one command line and returns true if the REPL should
// exit.
func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		r.printHelp()
	case "add_order":
		r.handleAddOrder(args)
	case "modify_order":
		r.handleModifyOrder(args)
	case "delete_order":
		r.handleDeleteOrder(args)
	default:
		fmt.Fprintf(r.out, "unknown command %q, type 'help' for a list\n", cmd)
	}
	return false
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "commands:")
	fmt.Fprintln(r.out, "  add_order <buy|sell> <volume> <price>")
	fmt.Fprintln(r.out, "  modify_order <id> <volume> <price>")
	fmt.Fprintln(r.out, "  delete_order <id>")
	fmt.Fprintln(r.out, "  help")
	fmt.Fprintln(r.out, "  quit")
}

func (r *REPL) handleAddOrder(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(r.out, "usage: add_order <buy|sell> <volume> <price>")
		return
	}

	side, err := parseSide(args[0])
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	volume, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid volume %q\n", args[1])
		return
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid price %q\n", args[2])
		return
	}

	// Each accepted order is tagged with a client correlation token for
	// callers that need to match a REPL response against their own
	// request log; the engine itself never sees or stores this token,
	// it is purely an external-interface convenience.
	token := uuid.New().String()

	id, err := r.engine.AddOrder(side, price, volume)
	if err != nil {
		r.logger.Debug().Str("token", token).Err(err).Msg("add_order rejected")
		fmt.Fprintf(r.out, "add_order rejected: %v\n", err)
		return
	}
	r.logger.Debug().Str("token", token).Uint64("orderID", id).Msg("add_order accepted")
	fmt.Fprintf(r.out, "order id=%d accepted (token=%s)\n", id, token)
}

func (r *REPL) handleModifyOrder(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(r.out, "usage: modify_order <id> <volume> <price>")
		return
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid id %q\n", args[0])
		return
	}
	volume, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid volume %q\n", args[1])
		return
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid price %q\n", args[2])
		return
	}

	newID, err := r.engine.ModifyOrder(id, price, volume)
	if err != nil {
		fmt.Fprintf(r.out, "modify_order rejected: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "order id=%d replaced by id=%d\n", id, newID)
}

func (r *REPL) handleDeleteOrder(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: delete_order <id>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "invalid id %q\n", args[0])
		return
	}
	if err := r.engine.DeleteOrder(id); err != nil {
		fmt.Fprintf(r.out, "delete_order rejected: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "order id=%d cancelled\n", id)
}

func parseSide(s string) (engine.Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return engine.Bid, nil
	case "sell":
		return engine.Ask, nil
	default:
		return 0, fmt.Errorf("invalid side %q, expected 'buy' or 'sell'", s)
	}
}
