package printer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	err       error
	printed   [][]byte
	closed    bool
	connected bool
}

func (f *fakePrinter) Print(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.printed = append(f.printed, data)
	return nil
}

func (f *fakePrinter) Close() error {
	f.closed = true
	return nil
}

func (f *fakePrinter) IsConnected() bool {
	return f.connected
}

func TestChainPrinter_FirstStrategyWins(t *testing.T) {
	first := &fakePrinter{}
	second := &fakePrinter{}
	chain := NewChainPrinter(
		NamedPrinter{Name: "usb", Printer: first},
		NamedPrinter{Name: "spool", Printer: second},
	)

	require.NoError(t, chain.Print([]byte("receipt")))

	assert.Len(t, first.printed, 1)
	assert.Empty(t, second.printed, "later strategies are not tried after a success")
}

func TestChainPrinter_FallsThroughOnFailure(t *testing.T) {
	broken := &fakePrinter{err: errors.New("device not found")}
	fallback := &fakePrinter{}
	chain := NewChainPrinter(
		NamedPrinter{Name: "usb", Printer: broken},
		NamedPrinter{Name: "spool", Printer: fallback},
	)

	require.NoError(t, chain.Print([]byte("receipt")))
	assert.Len(t, fallback.printed, 1)

	history := chain.History()
	require.Len(t, history, 2)
	assert.Equal(t, "usb", history[0].Strategy)
	assert.False(t, history[0].Success)
	assert.Contains(t, history[0].Error, "device not found")
	assert.Equal(t, "spool", history[1].Strategy)
	assert.True(t, history[1].Success)
}

func TestChainPrinter_AllStrategiesFail(t *testing.T) {
	chain := NewChainPrinter(
		NamedPrinter{Name: "usb", Printer: &fakePrinter{err: errors.New("no device")}},
		NamedPrinter{Name: "network", Printer: &fakePrinter{err: errors.New("timeout")}},
	)

	err := chain.Print([]byte("receipt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usb: no device")
	assert.Contains(t, err.Error(), "network: timeout")
}

func TestChainPrinter_Empty(t *testing.T) {
	chain := NewChainPrinter()
	assert.Error(t, chain.Print([]byte("receipt")))
}

func TestChainPrinter_CloseClosesAll(t *testing.T) {
	a := &fakePrinter{}
	b := &fakePrinter{}
	chain := NewChainPrinter(
		NamedPrinter{Name: "a", Printer: a},
		NamedPrinter{Name: "b", Printer: b},
	)

	require.NoError(t, chain.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestChainPrinter_IsConnected(t *testing.T) {
	chain := NewChainPrinter(
		NamedPrinter{Name: "a", Printer: &fakePrinter{connected: false}},
		NamedPrinter{Name: "b", Printer: &fakePrinter{connected: true}},
	)
	assert.True(t, chain.IsConnected())

	offline := NewChainPrinter(NamedPrinter{Name: "a", Printer: &fakePrinter{}})
	assert.False(t, offline.IsConnected())
}

func TestChainPrinter_HistoryBounded(t *testing.T) {
	p := &fakePrinter{}
	chain := NewChainPrinter(NamedPrinter{Name: "a", Printer: p})

	for i := 0; i < maxAttemptHistory+10; i++ {
		require.NoError(t, chain.Print([]byte("x")))
	}
	assert.Len(t, chain.History(), maxAttemptHistory)
}

func TestNewChainFromConfig(t *testing.T) {
	chain, err := NewChainFromConfig([]string{"spool,null"}, "", "", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"spool", "null"}, chain.Strategies())
}

func TestNewChainFromConfig_UnknownStrategy(t *testing.T) {
	_, err := NewChainFromConfig([]string{"laser"}, "", "", "")
	assert.Error(t, err)
}

func TestNewChainFromConfig_MissingDevicePath(t *testing.T) {
	_, err := NewChainFromConfig([]string{"usb"}, "", "", "")
	assert.Error(t, err)
}

func TestNewChainFromConfig_DefaultsToNull(t *testing.T) {
	chain, err := NewChainFromConfig(nil, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"null"}, chain.Strategies())
	assert.NoError(t, chain.Print([]byte("receipt")))
}
