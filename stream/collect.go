package stream

// Collect drains the stream and returns all values as a slice. When
// the stream ends with a terminal error, the values read before it are
// returned along with the error.
func Collect[T any](s *Stream[T]) ([]T, error) {
	var out []T
	for r := range s.All() {
		v, err := r.Get()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ForEach drains the stream and calls fn for each value. It stops at
// the first terminal error or at the first error returned by fn.
func ForEach[T any](s *Stream[T], fn func(T) error) error {
	for r := range s.All() {
		v, err := r.Get()
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			_ = s.Close()
			return err
		}
	}
	return nil
}

// Count drains the stream and returns the number of ok elements.
func Count[T any](s *Stream[T]) (int, error) {
	var n int
	for r := range s.All() {
		if err := r.Err(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
