package predprey

// History keeps the most recent rabbit and wolf counts, dropping the oldest
// sample once the limit is reached.
type History struct {
	limit   int
	rabbits []int
	wolves  []int
}

// NewHistory allocates a history holding at most limit samples per series.
// Non-positive limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		limit:   limit,
		rabbits: make([]int, 0, limit),
		wolves:  make([]int, 0, limit),
	}
}

// Append records one sample.
func (h *History) Append(rabbits, wolves int) {
	h.rabbits = pushBounded(h.rabbits, rabbits, h.limit)
	h.wolves = pushBounded(h.wolves, wolves, h.limit)
}

// Rabbits returns the rabbit series, oldest first. The slice is owned by the
// history and is only valid until the next Append.
func (h *History) Rabbits() []int { return h.rabbits }

// Wolves returns the wolf series, oldest first.
func (h *History) Wolves() []int { return h.wolves }

// Len returns the number of recorded samples.
func (h *History) Len() int { return len(h.rabbits) }

// Limit returns the capacity of each series.
func (h *History) Limit() int { return h.limit }

// Clear drops every sample.
func (h *History) Clear() {
	h.rabbits = h.rabbits[:0]
	h.wolves = h.wolves[:0]
}

func pushBounded(series []int, v, limit int) []int {
	if len(series) >= limit {
		n := copy(series, series[len(series)-limit+1:])
		series = series[:n]
	}
	return append(series, v)
}
