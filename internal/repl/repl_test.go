package repl

import (
	"bytes"
	"strings"
	"testing"

	"fenrir/internal/engine"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestREPL(t *testing.T, script string) (*REPL, *bytes.Buffer) {
	t.Helper()
	eng := engine.New()
	out := &bytes.Buffer{}
	r := New(eng, nil, strings.NewReader(script), out, zerolog.Nop())
	return r, out
}

func TestDispatch_AddOrderThenFindsTopOfBook(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.dispatch("add_order buy 5 10.7")

	assert.Contains(t, out.String(), "order id=0 accepted")
	bb, ok := r.engine.BestBid()
	assert.True(t, ok)
	assert.Equal(t, 10.7, bb)
}

func TestDispatch_AddOrderRejectsBadSide(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.dispatch("add_order sideways 5 10.7")

	assert.Contains(t, out.String(), "invalid side")
	_, ok := r.engine.BestBid()
	assert.False(t, ok)
}

func TestDispatch_ModifyAndDeleteOrder(t *testing.T) {
	r, out := newTestREPL(t, "")

	r.dispatch("add_order sell 10 100")
	out.Reset()

	r.dispatch("modify_order 0 5 50")
	assert.Contains(t, out.String(), "replaced by id=1")

	out.Reset()
	r.dispatch("delete_order 1")
	assert.Contains(t, out.String(), "order id=1 cancelled")

	out.Reset()
	r.dispatch("delete_order 1")
	assert.Contains(t, out.String(), "rejected")
}

func TestDispatch_QuitSignalsExit(t *testing.T) {
	r, _ := newTestREPL(t, "")
	assert.True(t, r.dispatch("quit"))
	assert.False(t, r.dispatch("help"))
}
