package progress

// Status is the completion tag attached to a progress entry.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in_progress"
	StatusNotStarted Status = "not_started"
)

// Known reports whether s is one of the statuses this package defines.
// Unknown tags are still accepted on input and count as not completed.
func (s Status) Known() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusNotStarted:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusInProgress:
		return "In progress"
	case StatusNotStarted:
		return "Not started"
	default:
		return string(s)
	}
}

// Entry records the status of one level for a user.
type Entry struct {
	LevelID int    `json:"level_id"`
	Status  Status `json:"status"`
}

// User is a read-only snapshot of a user's progress.
//
// Only Progress is consulted when deriving a rank. ID, Name and Coins are
// optional and are carried for display.
type User struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Coins    int     `json:"coins,omitempty"`
	Progress []Entry `json:"progress"`
}

// Completed returns the entries whose status is completed, in input order.
// A nil user yields nil.
func (u *User) Completed() []Entry {
	if u == nil {
		return nil
	}
	var out []Entry
	for _, e := range u.Progress {
		if e.Status == StatusCompleted {
			out = append(out, e)
		}
	}
	return out
}

// HighestCompleted returns the largest level id among completed entries.
// ok is false when there are none.
func (u *User) HighestCompleted() (levelID int, ok bool) {
	for _, e := range u.Completed() {
		if !ok || e.LevelID > levelID {
			levelID = e.LevelID
			ok = true
		}
	}
	return levelID, ok
}
