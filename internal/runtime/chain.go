package runtime

// chain is an immutable singly linked list. Pushing never touches the
// receiver, so two branches forked from the same chain cannot observe each
// other. The nil chain is empty.
type chain[T any] struct {
	head T
	tail *chain[T]
	size int
}

func (c *chain[T]) push(v T) *chain[T] {
	return &chain[T]{head: v, tail: c, size: c.len() + 1}
}

func (c *chain[T]) len() int {
	if c == nil {
		return 0
	}
	return c.size
}

// slice returns the elements newest first.
func (c *chain[T]) slice() []T {
	out := make([]T, 0, c.len())
	for n := c; n != nil; n = n.tail {
		out = append(out, n.head)
	}
	return out
}

// reversed returns the elements oldest first.
func (c *chain[T]) reversed() []T {
	out := make([]T, c.len())
	i := len(out) - 1
	for n := c; n != nil; n = n.tail {
		out[i] = n.head
		i--
	}
	return out
}
