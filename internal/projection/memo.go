package projection

import (
	"sync"
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// Memo caches the most recent series. An entry is reused only while both the
// task contents and the civil day of now are unchanged.
type Memo struct {
	mu          sync.Mutex
	fingerprint string
	day         time.Time
	samples     []DailySample
	hits        int
}

// NewMemo creates an empty Memo.
func NewMemo() *Memo {
	return &Memo{}
}

// Series returns the cached series when valid, recomputing otherwise.
// Callers must not modify the returned slice.
func (m *Memo) Series(tasks []task.Task, now time.Time) []DailySample {
	fp := task.Fingerprint(tasks)
	day := calendar.StartOfDay(now)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.samples != nil && m.fingerprint == fp && m.day.Equal(day) {
		m.hits++
		return m.samples
	}
	m.samples = Series(tasks, now)
	m.fingerprint = fp
	m.day = day
	return m.samples
}

// Hits reports how many calls were served from the cache.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Reset drops the cached entry.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = nil
	m.fingerprint = ""
}
