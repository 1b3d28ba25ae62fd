package sched

import "github.com/teeterq/teeter/core/model"

// node is the scheduler-owned membership record for one queued request. The
// request itself never embeds scheduler state; adjacency is tracked here and
// looked up by request ID.
type node struct {
	req  *model.Request
	prev *node
	next *node
}

// fifo is an ordered sequence of queued requests, oldest at the front.
type fifo struct {
	head *node
	tail *node
	size int
}

func (q *fifo) empty() bool { return q.head == nil }

func (q *fifo) len() int { return q.size }

func (q *fifo) front() *node { return q.head }

func (q *fifo) pushBack(n *node) {
	n.prev = q.tail
	n.next = nil
	if q.tail != nil {
		q.tail.next = n
	} else {
		q.head = n
	}
	q.tail = n
	q.size++
}

// remove unlinks n, stitching its neighbors together. n must belong to q.
func (q *fifo) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		q.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		q.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	q.size--
}
