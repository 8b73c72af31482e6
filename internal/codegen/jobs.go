package codegen

// Job priorities. Higher runs earlier. Final-priority jobs run after all
// component generation has finished; the shared-lambda declaration flush
// lives there.
const (
	priorityDefault = 0
	priorityFinal   = -100
)

type deferredJob struct {
	priority int
	seq      int
	run      func()
}

// jobQueue is an explicit ordered task queue owned by the generation
// driver. Jobs with equal priority keep their enqueue order; jobs enqueued
// while the queue is draining are picked up in the same drain.
type jobQueue struct {
	jobs []deferredJob
	seq  int
}

func (q *jobQueue) add(priority int, run func()) {
	q.jobs = append(q.jobs, deferredJob{priority: priority, seq: q.seq, run: run})
	q.seq++
}

func (q *jobQueue) runAll() {
	for len(q.jobs) > 0 {
		best := 0
		for i := 1; i < len(q.jobs); i++ {
			if q.jobs[i].priority > q.jobs[best].priority {
				best = i
				continue
			}
			if q.jobs[i].priority == q.jobs[best].priority && q.jobs[i].seq < q.jobs[best].seq {
				best = i
			}
		}
		job := q.jobs[best]
		q.jobs = append(q.jobs[:best], q.jobs[best+1:]...)
		job.run()
	}
}
