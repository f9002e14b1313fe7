package player

import "math/rand/v2"

// Queue is a FIFO of tracks. Popped slots are reclaimed once the dead prefix
// outgrows the live part, so append and pop-front stay amortized O(1).
type Queue struct {
	items []Track
	head  int
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.items) - q.head
}

// Push appends a track and returns the new length.
func (q *Queue) Push(t Track) int {
	q.items = append(q.items, t)
	return q.Len()
}

// Front returns the head of the queue.
func (q *Queue) Front() (Track, bool) {
	if q.Len() == 0 {
		return Track{}, false
	}
	return q.items[q.head], true
}

// PopFront removes and returns the head of the queue.
func (q *Queue) PopFront() (Track, bool) {
	if q.Len() == 0 {
		return Track{}, false
	}
	t := q.items[q.head]
	q.items[q.head] = Track{}
	q.head++

	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 16 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return t, true
}

// Clear drops every track.
func (q *Queue) Clear() {
	q.items = nil
	q.head = 0
}

// Snapshot returns a copy of the queued tracks in play order.
func (q *Queue) Snapshot() []Track {
	out := make([]Track, q.Len())
	copy(out, q.items[q.head:])
	return out
}

// Shuffle permutes the tracks from position from (0-based) to the tail using
// Fisher-Yates.
func (q *Queue) Shuffle(rng *rand.Rand, from int) {
	live := q.items[q.head:]
	if from < 0 {
		from = 0
	}
	for i := len(live) - 1; i > from; i-- {
		j := from + rng.IntN(i-from+1)
		live[i], live[j] = live[j], live[i]
	}
}
