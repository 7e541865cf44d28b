package util

// Stack is the navigation history of the front ends.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top element. The zero value is returned when empty.
func (s *Stack[T]) Pop() (item T) {
	if n := len(s.items); n > 0 {
		item, s.items = s.items[n-1], s.items[:n-1]
	}
	return
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
