package telemetry

import (
	"strings"
	"sync"
)

type Report struct {
	Kind   string
	ID     string
	Params []any
}

// TestAPI records every report it receives so tests can assert on them.
type TestAPI struct {
	mutex   sync.Mutex
	reports []Report
	counts  map[string]int64
}

func NewTestAPI() *TestAPI {
	return &TestAPI{counts: map[string]int64{}}
}

func (t *TestAPI) record(kind, id string, params []any) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.reports = append(t.reports, Report{Kind: kind, ID: id, Params: params})
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.record("broken", id, params)
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.record("warning", id, params)
}

func (t *TestAPI) ReportDebug(msg string, params ...any) {
	t.record("debug", msg, params)
}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.counts[id] = count
}

// Reports returns all reports of the given kind whose id contains `id`.
func (t *TestAPI) Reports(kind, id string) []Report {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var out []Report
	for _, r := range t.reports {
		if r.Kind == kind && strings.Contains(r.ID, id) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the last count reported under an id containing `id`.
func (t *TestAPI) Count(id string) (int64, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for k, v := range t.counts {
		if strings.Contains(k, id) {
			return v, true
		}
	}
	return 0, false
}
