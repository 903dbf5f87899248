// Package dataset provides the lazy data-stream contract the Lab drains
// once per generation, and a couple of built-in handlers for tests and
// benchmark runs.
package dataset

// Record is one domain-opaque data point fed to every Algo's cells during
// a generation.
type Record = []float64

// Handler produces a finite lazy sequence of Records per generation.
// Prepare must be idempotent between generations; GetNextData returns
// (nil, false) to signal end of stream for the current generation.
type Handler interface {
	Prepare()
	GetNextData() (Record, bool)
}

// Empty is a Handler that emits a fixed number of zero-length records,
// useful for Algo types (like the benchmark functions) whose Action
// ignores its input entirely. Grounded on original_source's EmptyDataset.
type Empty struct {
	NEmission int
	emitted   int
}

// NewEmpty creates an Empty dataset emitting n records per generation.
func NewEmpty(n int) *Empty {
	return &Empty{NEmission: n}
}

func (e *Empty) Prepare() { e.emitted = 0 }

func (e *Empty) GetNextData() (Record, bool) {
	if e.emitted < e.NEmission {
		e.emitted++
		return Record{}, true
	}
	return nil, false
}

// Slice replays a fixed slice of records, once per generation, in order.
type Slice struct {
	Records []Record
	pos     int
}

// NewSlice creates a Slice dataset over the given records.
func NewSlice(records []Record) *Slice {
	return &Slice{Records: records}
}

func (s *Slice) Prepare() { s.pos = 0 }

func (s *Slice) GetNextData() (Record, bool) {
	if s.pos < len(s.Records) {
		r := s.Records[s.pos]
		s.pos++
		return r, true
	}
	return nil, false
}
