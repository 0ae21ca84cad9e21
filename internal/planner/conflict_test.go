package planner

import "testing"

func timedInstance(id, start, end string) TaskInstance {
	return TaskInstance{ID: id, StartTime: start, EndTime: end}
}

func TestFindConflictsBackToBack(t *testing.T) {
	got := FindConflicts([]TaskInstance{
		timedInstance("a", "09:00", "10:00"),
		timedInstance("b", "10:00", "11:00"),
	})
	if len(got) != 0 {
		t.Fatalf("back-to-back instances must not conflict, got %v", got)
	}
}

func TestFindConflictsOverlap(t *testing.T) {
	got := FindConflicts([]TaskInstance{
		timedInstance("a", "09:00", "10:30"),
		timedInstance("b", "10:00", "11:00"),
	})
	if !got["a"] || !got["b"] {
		t.Fatalf("expected both ids in conflict set, got %v", got)
	}
}

func TestFindConflictsIgnoresUntimed(t *testing.T) {
	got := FindConflicts([]TaskInstance{
		timedInstance("a", "09:00", "10:00"),
		{ID: "b"},
		{ID: "c", StartTime: "09:30"},
	})
	if len(got) != 0 {
		t.Fatalf("untimed instances cannot conflict, got %v", got)
	}
}

func TestFindConflictsChain(t *testing.T) {
	// b overlaps both a and c; a and c do not overlap each other, but
	// every participant of at least one overlap is reported.
	got := FindConflicts([]TaskInstance{
		timedInstance("a", "09:00", "10:00"),
		timedInstance("b", "09:30", "11:30"),
		timedInstance("c", "11:00", "12:00"),
	})
	if !got["a"] || !got["b"] || !got["c"] {
		t.Fatalf("expected all three ids, got %v", got)
	}
}

func TestFindConflictsContainment(t *testing.T) {
	got := FindConflicts([]TaskInstance{
		timedInstance("outer", "09:00", "17:00"),
		timedInstance("inner", "12:00", "13:00"),
	})
	if !got["outer"] || !got["inner"] {
		t.Fatalf("containment is a conflict, got %v", got)
	}
}
