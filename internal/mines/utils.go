package mines

// cellqueue is a FIFO of cell indices threaded through a next array with one
// slot per cell, so a cell must not be queued twice while still pending.
type cellqueue struct {
	next       []int
	head, tail int
}

func newCellQueue(n int) *cellqueue {
	return &cellqueue{next: make([]int, n), head: -1, tail: -1}
}

func (q *cellqueue) add(i int) {
	if q.tail >= 0 {
		q.next[q.tail] = i
	} else {
		q.head = i
	}
	q.tail = i
	q.next[i] = -1
}

func (q *cellqueue) pop() (int, bool) {
	if q.head < 0 {
		return 0, false
	}
	i := q.head
	q.head = q.next[i]
	if q.head < 0 {
		q.tail = -1
	}
	return i, true
}
