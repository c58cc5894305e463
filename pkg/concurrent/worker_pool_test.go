package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

type squareResult struct {
	idx   int
	value int
}

func TestWorkerPool(t *testing.T) {
	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	wp := NewWorkerPool[[2]int, squareResult](4, len(jobs))
	wp.Start(func(job [2]int) squareResult {
		return squareResult{idx: job[0], value: job[1] * job[1]}
	})
	for i, v := range jobs {
		wp.AddJob(i, [2]int{i, v})
	}
	wp.Close()
	wp.Wait()

	got := make([]squareResult, 0, len(jobs))
	for r := range wp.CollectResults() {
		got = append(got, r)
	}
	sort.Slice(got, func(i, j int) bool { return got[i].idx < got[j].idx })

	assert.Len(t, got, len(jobs))
	for i, r := range got {
		assert.Equal(t, jobs[i]*jobs[i], r.value)
	}
}

func TestWorkerPoolAtLeastOneWorker(t *testing.T) {
	wp := NewWorkerPool[int, int](0, 1)
	assert.Equal(t, 1, wp.NumWorkers())
}
