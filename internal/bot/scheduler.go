package bot

import (
	"sync"
	"time"
)

type TaskKind int

const (
	// TaskClosePoll closes one match's poll at kickoff. One-shot per match.
	TaskClosePoll TaskKind = iota
	// TaskMatchday posts the daily calendar and opens the day's polls.
	TaskMatchday
	// TaskLeaderboard posts the leaderboard to the group chat.
	TaskLeaderboard
)

func (k TaskKind) String() string {
	switch k {
	case TaskClosePoll:
		return "close-poll"
	case TaskMatchday:
		return "matchday"
	case TaskLeaderboard:
		return "leaderboard"
	}
	return "unknown"
}

// Task is one scheduled action. Close tasks carry the match they belong to;
// recurring tasks carry a Repeat interval and are re-armed after firing.
type Task struct {
	FireAt  time.Time
	MatchID uint
	Kind    TaskKind
	Repeat  time.Duration
}

// Scheduler owns the list of pending tasks. A single polling loop drains due
// tasks, so handlers never capture per-match state in timer closures.
type Scheduler struct {
	mu    sync.Mutex
	tasks []Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

// HasClose reports whether a close is already pending for a match, so
// re-running the daily tick never double-schedules.
func (s *Scheduler) HasClose(matchID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Kind == TaskClosePoll && t.MatchID == matchID {
			return true
		}
	}
	return false
}

// CancelMatch drops any pending close for a deleted match.
func (s *Scheduler) CancelMatch(matchID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Kind == TaskClosePoll && t.MatchID == matchID {
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
}

// Due removes and returns every task due at now. Recurring tasks are re-armed
// at their next future fire time instead of being removed.
func (s *Scheduler) Due(now time.Time) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.FireAt.After(now) {
			kept = append(kept, t)
			continue
		}
		due = append(due, t)
		if t.Repeat > 0 {
			next := t
			for !next.FireAt.After(now) {
				next.FireAt = next.FireAt.Add(t.Repeat)
			}
			kept = append(kept, next)
		}
	}
	s.tasks = kept
	return due
}

// Run polls for due tasks on a fixed interval and hands them to dispatch.
// The returned stop function ends the loop and releases the ticker.
func (s *Scheduler) Run(interval time.Duration, dispatch func(Task)) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				for _, t := range s.Due(time.Now()) {
					dispatch(t)
				}
			}
		}
	}()
	return func() { close(done) }
}
