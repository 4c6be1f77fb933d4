// Package samples holds example specs bundled with the spectree binary.
package samples

import (
	"errors"
	"fmt"

	"github.com/specvital/spectree/pkg/spec"
)

// ErrEmpty is returned when popping or peeking an empty Stack.
var ErrEmpty = errors.New("stack is empty")

// Stack is a LIFO of ints.
type Stack struct {
	items []int
}

func (s *Stack) Push(v int) {
	s.items = append(s.items, v)
}

func (s *Stack) Pop() (int, error) {
	v, err := s.Peek()
	if err != nil {
		return 0, err
	}
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *Stack) Peek() (int, error) {
	if len(s.items) == 0 {
		return 0, ErrEmpty
	}
	return s.items[len(s.items)-1], nil
}

func (s *Stack) Len() int {
	return len(s.items)
}

// StackSpec describes Stack.
type StackSpec struct {
	stack *Stack
}

func (s *StackSpec) Describes() spec.Suite {
	return spec.Describes("Stack", func(it spec.Builder) {
		it.BeforeEach(func() error {
			s.stack = &Stack{}
			return nil
		})

		it.Should("be empty when created", func() error {
			return expectLen(s.stack, 0)
		})

		it.ShouldThrow(ErrEmpty, "throw on pop when empty", func() error {
			_, err := s.stack.Pop()
			return err
		})

		it.Spec("after a push", func(it spec.Builder) {
			it.BeforeEach(func() error {
				s.stack.Push(42)
				return nil
			})

			it.Should("not be empty", func() error {
				return expectLen(s.stack, 1)
			})

			it.Should("return the pushed value on peek", func() error {
				v, err := s.stack.Peek()
				if err != nil {
					return err
				}
				if v != 42 {
					return fmt.Errorf("peek = %d, want 42", v)
				}
				return nil
			})

			it.Should("be empty after pop", func() error {
				if _, err := s.stack.Pop(); err != nil {
					return err
				}
				return expectLen(s.stack, 0)
			})
		})

		it.Spec("with many values", func(it spec.Builder) {
			spec.Params1(it, "hold %1 values", func(n int) error {
				for i := range n {
					s.stack.Push(i)
				}
				return expectLen(s.stack, n)
			}, 1, 10, 100)
		})
	})
}

func expectLen(s *Stack, want int) error {
	if got := s.Len(); got != want {
		return fmt.Errorf("len = %d, want %d", got, want)
	}
	return nil
}
