// Package query holds the filter/pagination state of a resource list.
//
// A Holder owns the current filter values for one list page. Updates are
// partial merges that always produce a fresh snapshot, so consumers can
// detect change by comparing snapshots and fetch triggers fire exactly once
// per update.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"
)

// Values is one snapshot of filter state. Keys are a fixed, page-defined
// set; a nil value means "unset" and is omitted from outbound requests.
type Values map[string]any

// Clone returns a shallow copy of the snapshot.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Keys returns the set keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for key, or nil when unset.
func (v Values) Get(key string) any {
	val, ok := v[key]
	if !ok {
		return nil
	}
	return val
}

// String returns the value for key as a display string, or "" when unset.
func (v Values) String(key string) string {
	val := v.Get(key)
	if val == nil {
		return ""
	}
	return scalarString(val)
}

// Encode converts the snapshot to URL query parameters. Unset (nil) keys
// are omitted entirely rather than sent as empty or null values.
func (v Values) Encode() url.Values {
	out := url.Values{}
	for _, k := range v.Keys() {
		val := v[k]
		if val == nil {
			continue
		}
		out.Set(k, scalarString(val))
	}
	return out
}

func scalarString(val any) string {
	switch t := val.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// Page sizes and ids decoded from JSON arrive as float64.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Holder owns the mutable filter state of one list page.
type Holder struct {
	mu         sync.Mutex
	values     Values
	generation uint64
	listeners  []func(Values)
}

// New creates a holder seeded with the page's default filter values.
func New(defaults Values) *Holder {
	return &Holder{values: defaults.Clone()}
}

// Values returns the current snapshot. The returned map must not be
// mutated; Update is the only write path.
func (h *Holder) Values() Values {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.values
}

// Generation returns a counter that increments on every Update, so a
// caller can tell whether the query changed since a snapshot was taken.
func (h *Holder) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generation
}

// Update shallow-merges partial into a new snapshot. The previous snapshot
// is never mutated in place. Every listener is notified exactly once with
// the new snapshot.
func (h *Holder) Update(partial Values) Values {
	h.mu.Lock()
	next := h.values.Clone()
	for k, v := range partial {
		next[k] = v
	}
	h.values = next
	h.generation++
	listeners := make([]func(Values), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// OnChange registers a listener invoked after each Update.
func (h *Holder) OnChange(fn func(Values)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}
