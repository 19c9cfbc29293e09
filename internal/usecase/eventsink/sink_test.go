package eventsink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
	eventsinkv1 "github.com/tradelat/matchbench/internal/domain/eventsink/v1"
	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	"github.com/tradelat/matchbench/pkg/config"
	"github.com/tradelat/matchbench/pkg/logger"
)

func testEvent(i int) eventv1.Event {
	o := orderv1.NewLimit(uuid.New(), "BTC-USD", orderv1.SideBuy, 100.5, float64(i+1))
	return eventv1.OrderReceived(o)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestNoopSink(t *testing.T) {
	s := NewNoopSink()
	require.NoError(t, s.Emit(testEvent(0)))
	require.NoError(t, s.Close())
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)

	ev := testEvent(0)
	require.NoError(t, s.Emit(ev))
	require.NoError(t, s.Close())

	assert.Equal(t, ev.Text()+"\n", buf.String())
}

func TestFileSink_WritesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	s, err := NewFileSink(path)
	require.NoError(t, err)

	ev := testEvent(0)
	require.NoError(t, s.Emit(ev))

	// visible on disk before Close
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, ev.Text(), lines[0])

	require.NoError(t, s.Close())
}

func TestBufferedFileSink_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	s, err := NewBufferedFileSink(path, 1<<16)
	require.NoError(t, err)

	ev := testEvent(0)
	require.NoError(t, s.Emit(ev))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "event should still be in the buffer")

	require.NoError(t, s.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, ev.Text(), lines[0])
}

func TestAsyncSinks_PreserveOrder(t *testing.T) {
	log := testLogger(t)

	tests := []struct {
		name string
		open func(path string) (eventsinkv1.Sink, error)
	}{
		{
			name: "string",
			open: func(path string) (eventsinkv1.Sink, error) {
				return NewAsyncStringSink(path, 128, 1<<16, log)
			},
		},
		{
			name: "record",
			open: func(path string) (eventsinkv1.Sink, error) {
				return NewAsyncRecordSink(path, 128, 1<<16, log)
			},
		},
		{
			name: "closure",
			open: func(path string) (eventsinkv1.Sink, error) {
				return NewAsyncClosureSink(path, 128, 1<<16, log)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.log")
			s, err := tc.open(path)
			require.NoError(t, err)

			const n = 500
			want := make([]string, 0, n)
			for i := 0; i < n; i++ {
				ev := testEvent(i)
				want = append(want, ev.Text())
				require.NoError(t, s.Emit(ev))
			}
			require.NoError(t, s.Close())

			assert.Equal(t, want, readLines(t, path))
		})
	}
}

func TestAsyncSink_EmitAfterCloseIsDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	s, err := NewAsyncRecordSink(path, 8, 1<<16, testLogger(t))
	require.NoError(t, err)

	require.NoError(t, s.Emit(testEvent(0)))
	require.NoError(t, s.Close())

	require.NoError(t, s.Emit(testEvent(1)))
	require.Len(t, readLines(t, path), 1)
}

func TestAsyncSink_DegradesOnWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	// tiny write buffer so every line goes straight to the file
	s, err := NewAsyncStringSink(path, 1024, 4, testLogger(t))
	require.NoError(t, err)

	// kill the file out from under the consumer
	require.NoError(t, s.f.Close())

	for i := 0; i < 512; i++ {
		require.NoError(t, s.Emit(testEvent(i)))
	}

	err = s.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degraded")
}

func TestTracingFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	s, err := NewTracingFileSink(path, 1<<16, 0)
	require.NoError(t, err)

	ev := testEvent(0)
	require.NoError(t, s.Emit(ev))
	require.NoError(t, s.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], ev.Text())
}

func TestNew_Dispatch(t *testing.T) {
	log := testLogger(t)

	tests := []struct {
		mode eventsinkv1.Mode
		want string
	}{
		{eventsinkv1.ModeNone, "*eventsink.NoopSink"},
		{eventsinkv1.ModeConsole, "*eventsink.ConsoleSink"},
		{eventsinkv1.ModeFile, "*eventsink.FileSink"},
		{eventsinkv1.ModeBufferedFile, "*eventsink.BufferedFileSink"},
		{eventsinkv1.ModeAsyncString, "*eventsink.AsyncStringSink"},
		{eventsinkv1.ModeAsyncClosure, "*eventsink.AsyncClosureSink"},
		{eventsinkv1.ModeAsyncRecord, "*eventsink.AsyncRecordSink"},
		{eventsinkv1.ModeTracingFile, "*eventsink.TracingFileSink"},
		{eventsinkv1.ModeTracingConsole, "*eventsink.TracingConsoleSink"},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			cfg := config.SinkConfig{
				OutputDir:       t.TempDir(),
				ChannelCapacity: 16,
				BufferSize:      1 << 12,
			}
			s, err := New(tc.mode, cfg, log)
			require.NoError(t, err)
			assert.Equal(t, tc.want, fmt.Sprintf("%T", s))
			require.NoError(t, s.Close())
		})
	}
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(eventsinkv1.Mode("bogus"), config.SinkConfig{OutputDir: t.TempDir()}, testLogger(t))
	require.ErrorIs(t, err, eventsinkv1.ErrUnknownMode)
}
