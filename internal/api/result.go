package api

// Kind identifies which operation failed. Each kind maps to one fixed,
// human-readable message; no transport detail is exposed.
type Kind int

const (
	KindFetchTodos Kind = iota + 1
	KindCreateTodo
	KindDeleteTodo
	KindUpdateTodo
	KindFetchTrash
	KindDeleteTrash
	KindRestoreTrash
	KindEmptyTrash
)

// Message returns the user-facing text for the failure kind
func (k Kind) Message() string {
	switch k {
	case KindFetchTodos:
		return "Failed to fetch todos"
	case KindCreateTodo:
		return "Failed to create todo"
	case KindDeleteTodo:
		return "Failed to delete todo"
	case KindUpdateTodo:
		return "Failed to update todo"
	case KindFetchTrash:
		return "Failed to fetch trash"
	case KindDeleteTrash:
		return "Failed to delete trash item"
	case KindRestoreTrash:
		return "Failed to restore todo"
	case KindEmptyTrash:
		return "Failed to empty trash"
	default:
		return "Request failed"
	}
}

func (k Kind) String() string {
	return k.Message()
}

// Failure is the error variant of a Result
type Failure struct {
	Kind Kind
}

func (f *Failure) Error() string {
	return f.Kind.Message()
}

// None is the payload of operations that return no data
type None struct{}

// Result is either a success carrying Data or a Failure carrying a Kind
type Result[T any] struct {
	data    T
	failure *Failure
}

// Ok wraps a successful payload
func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Fail builds the failure variant for kind
func Fail[T any](kind Kind) Result[T] {
	return Result[T]{failure: &Failure{Kind: kind}}
}

// OK reports whether the result is the success variant
func (r Result[T]) OK() bool {
	return r.failure == nil
}

// Data returns the payload; the zero value on failure
func (r Result[T]) Data() T {
	return r.data
}

// Failure returns the failure variant, or nil on success
func (r Result[T]) Failure() *Failure {
	return r.failure
}

// Unwrap returns the payload and a nil error, or the zero value and the *Failure
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.data, nil
}
