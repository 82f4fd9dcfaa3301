// Package rank derives the rank label shown for a user's progress.
package rank

import "github.com/ecoloop/ecoloop/internal/progress"

const (
	// DefaultLabel is shown when the user has no completed level.
	DefaultLabel = "Eco Scout"

	// FallbackLabel is shown when the highest completed level id has no
	// entry in the tier table.
	FallbackLabel = "Eco Beginner"
)

// Tier pairs a level id with the rank it unlocks.
type Tier struct {
	LevelID int
	Label   string
}

// tiers is ordered by level id. Level ids are contiguous from 1; the tests
// enforce it.
var tiers = [...]Tier{
	{LevelID: 1, Label: "Eco Beginner"},
	{LevelID: 2, Label: "Climate Champion"},
	{LevelID: 3, Label: "Resource Guardian"},
	{LevelID: 4, Label: "Green Practitioner"},
	{LevelID: 5, Label: "Climate Aware Advocate"},
}

// Tiers returns a copy of the tier table in level order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

// lookup returns the label for levelID and whether the table defines it.
func lookup(levelID int) (string, bool) {
	if levelID < 1 || levelID > len(tiers) {
		return FallbackLabel, false
	}
	return tiers[levelID-1].Label, true
}

// Label maps a single level id to its rank, using FallbackLabel for ids the
// table does not define.
func Label(levelID int) string {
	label, _ := lookup(levelID)
	return label
}

// Result is the detailed outcome of resolving a rank.
type Result struct {
	Label string

	// LevelID is the highest completed level id. Zero when HasCompleted is
	// false.
	LevelID int

	// HasCompleted reports whether any completed entry exists.
	HasCompleted bool

	// Mapped is false when LevelID is outside the tier table and Label is
	// the fallback. Level ids are assumed to follow progression order; an
	// unmapped id usually means that assumption no longer holds.
	Mapped bool
}

// Evaluate resolves the rank for u and reports how it was chosen.
// A nil user or one without progress gets DefaultLabel.
func Evaluate(u *progress.User) Result {
	levelID, ok := u.HighestCompleted()
	if !ok {
		return Result{Label: DefaultLabel, Mapped: true}
	}
	label, mapped := lookup(levelID)
	return Result{
		Label:        label,
		LevelID:      levelID,
		HasCompleted: true,
		Mapped:       mapped,
	}
}

// Resolve returns the rank label for u. It never fails: missing users,
// missing progress and unknown level ids all resolve to a label.
func Resolve(u *progress.User) string {
	return Evaluate(u).Label
}
