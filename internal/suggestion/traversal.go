package suggestion

import "github.com/collegeconnect/socialgraph/pkg/models"

type visitedSet map[models.UserID]struct{}

func (v visitedSet) visit(id models.UserID) bool {
	if _, ok := v[id]; ok {
		return false
	}
	v[id] = struct{}{}
	return true
}

func (v visitedSet) seen(id models.UserID) bool {
	_, ok := v[id]
	return ok
}

// fifo is a slice-backed queue; head advances instead of reslicing so the
// backing array is reused.
type fifo struct {
	items []models.UserID
	head  int
}

func (q *fifo) push(id models.UserID) {
	q.items = append(q.items, id)
}

func (q *fifo) pop() (models.UserID, bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	id := q.items[q.head]
	q.head++
	return id, true
}

func (q *fifo) empty() bool {
	return q.head >= len(q.items)
}

// frame is one level of a depth-first walk: the node and the index of the
// next neighbour to examine.
type frame struct {
	node  models.UserID
	next  int
	depth int
}

type frameStack []frame

func (s *frameStack) push(f frame) {
	*s = append(*s, f)
}

func (s *frameStack) top() *frame {
	return &(*s)[len(*s)-1]
}

func (s *frameStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s frameStack) empty() bool {
	return len(s) == 0
}
