package concurrent

type Job[T any] struct {
	ID      int
	JobItem T
}

type JobFunc[T any, G any] func(job T) G

func NewJob[T any](id int, item T) Job[T] {
	return Job[T]{
		ID:      id,
		JobItem: item,
	}
}
