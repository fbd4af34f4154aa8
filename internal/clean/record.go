package clean

import "strings"

// Status is the outcome of one task record.
type Status string

const (
	StatusOK   Status = "OK"
	StatusSkip Status = "SKIP"
	StatusFail Status = "FAIL"
)

// failedNote is appended to records downgraded after a command failure.
const failedNote = "commands failed"

// Record is the immutable outcome of a task, or of a sub-step of a task.
type Record struct {
	Task      string
	Status    Status
	Note      string
	Estimated int64
	Reclaimed int64
}

// Totals is the fold of a record list.
type Totals struct {
	Estimated int64
	Reclaimed int64
	OK        int
	Skipped   int
	Failed    int
}

// Sum folds records into totals.
func Sum(records []Record) Totals {
	var t Totals
	for _, r := range records {
		t.Estimated += r.Estimated
		t.Reclaimed += r.Reclaimed
		switch r.Status {
		case StatusOK:
			t.OK++
		case StatusSkip:
			t.Skipped++
		case StatusFail:
			t.Failed++
		}
	}
	return t
}

// finalize applies the end-of-task rules to a task's buffered records and
// returns new values. The reclaimed bytes of the task window go to every
// record. OK becomes FAIL when the task failed; SKIP is never touched.
func finalize(buf []Record, failed bool, reclaimed int64) []Record {
	if reclaimed < 0 {
		reclaimed = 0
	}
	out := make([]Record, len(buf))
	for i, r := range buf {
		r.Reclaimed = reclaimed
		if failed && r.Status == StatusOK {
			r.Status = StatusFail
			r.Note = appendNote(r.Note, failedNote)
		}
		out[i] = r
	}
	return out
}

func appendNote(note, extra string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return extra
	}
	return note + "; " + extra
}
