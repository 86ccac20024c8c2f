// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/nxadm/tail"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

const instrumentationName = "github.com/elastic/histocat/internal/watch"

// MutationHandler is called for each parsed journal line
type MutationHandler func(m Mutation)

// Journal follows a mutation journal and calls handlers for each new line
type Journal struct {
	path      string
	fromStart bool
	handlers  []MutationHandler
	tail      *tail.Tail
	ready     chan struct{}
	readyOnce sync.Once
	logger    log.Logger
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// Config holds journal configuration
type Config struct {
	Context   context.Context // Parent context; Background when nil
	Path      string
	FromStart bool // Replay existing lines before following
	Logger    log.Logger
}

// New creates a new Journal
func New(cfg Config) (*Journal, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("no journal to follow")
	}

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	logger := cfg.Logger
	if logger == nil {
		logger = global.GetLoggerProvider().Logger(instrumentationName)
	}

	return &Journal{
		path:      cfg.Path,
		fromStart: cfg.FromStart,
		handlers:  make([]MutationHandler, 0),
		ready:     make(chan struct{}),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// AddHandler adds a mutation handler
func (j *Journal) AddHandler(h MutationHandler) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.handlers = append(j.handlers, h)
}

// Path returns the followed file
func (j *Journal) Path() string {
	return j.path
}

// Ready is closed once the journal is being followed.
func (j *Journal) Ready() <-chan struct{} {
	return j.ready
}

// Start follows the journal until Stop is called or the context is done.
func (j *Journal) Start() error {
	defer j.markReady()

	// The offset is resolved here rather than by the tailer's goroutine, so
	// every line appended after Ready is read.
	offset, err := j.startOffset()
	if err != nil {
		return err
	}
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,  // Handle journal rotation
		MustExist: false, // The journal may be created later
		Poll:      true,  // Use polling (more reliable across filesystems)
		Location:  &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Logger:    tail.DiscardingLogger,
	}

	t, err := tail.TailFile(j.path, cfg)
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", j.path, err)
	}

	j.mu.Lock()
	j.tail = t
	j.mu.Unlock()
	j.markReady()

	defer func() {
		_ = t.Stop()
		t.Cleanup()
	}()

	for {
		select {
		case <-j.ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				j.emit(log.SeverityWarn, "journal read error", log.String("error.message", line.Err.Error()))
				continue
			}
			if m, ok := ParseMutation(line.Text); ok {
				j.callHandlers(m)
			}
		}
	}
}

// startOffset is where following begins: the current end of the journal,
// or its start when replaying or when the journal does not exist yet.
func (j *Journal) startOffset() (int64, error) {
	if j.fromStart {
		return 0, nil
	}
	info, err := os.Stat(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", j.path, err)
	}
	return info.Size(), nil
}

// Stop stops following the journal
func (j *Journal) Stop() {
	j.cancel()
}

func (j *Journal) markReady() {
	j.readyOnce.Do(func() { close(j.ready) })
}

func (j *Journal) callHandlers(m Mutation) {
	j.mu.Lock()
	handlers := make([]MutationHandler, len(j.handlers))
	copy(handlers, j.handlers)
	j.mu.Unlock()

	for _, h := range handlers {
		h(m)
	}
}

func (j *Journal) emit(sev log.Severity, msg string, attrs ...log.KeyValue) {
	var record log.Record
	record.SetTimestamp(time.Now())
	record.SetSeverity(sev)
	record.SetBody(log.StringValue(msg))
	record.AddAttributes(log.String("journal.path", j.path))
	record.AddAttributes(attrs...)
	j.logger.Emit(j.ctx, record)
}
