// Where: cli/internal/infra/compose/tail.go
// What: Bounded capture of child output.
// Why: Long-running children must not grow memory while we keep the last
// lines for error reports.
package compose

import (
	"strings"
	"sync"
)

const (
	defaultTailBytes = 16 * 1024
	defaultTailLines = 20
)

// tailBuffer keeps the most recent max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	if max <= 0 {
		max = defaultTailBytes
	}
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

// Bytes returns a copy of the retained output.
func (t *tailBuffer) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.buf...)
}

// Lines returns at most n trailing non-empty lines.
func (t *tailBuffer) Lines(n int) string {
	text := strings.TrimRight(string(t.Bytes()), "\r\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
