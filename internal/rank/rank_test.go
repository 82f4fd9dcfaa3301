package rank

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/ecoloop/ecoloop/internal/progress"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func completed(id int) progress.Entry {
	return progress.Entry{LevelID: id, Status: progress.StatusCompleted}
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name string
		user *progress.User
		want string
	}{
		{"nil user", nil, "Eco Scout"},
		{"nil progress", &progress.User{}, "Eco Scout"},
		{"empty progress", &progress.User{Progress: []progress.Entry{}}, "Eco Scout"},
		{
			"highest of two completed",
			&progress.User{Progress: []progress.Entry{completed(2), completed(1)}},
			"Climate Champion",
		},
		{
			"only in progress",
			&progress.User{Progress: []progress.Entry{{LevelID: 3, Status: progress.StatusInProgress}}},
			"Eco Scout",
		},
		{
			"five beats three",
			&progress.User{Progress: []progress.Entry{completed(5), completed(3)}},
			"Climate Aware Advocate",
		},
		{
			"unmapped level id",
			&progress.User{Progress: []progress.Entry{completed(99)}},
			"Eco Beginner",
		},
		{
			"zero and negative ids fall back",
			&progress.User{Progress: []progress.Entry{completed(0), completed(-4)}},
			"Eco Beginner",
		},
		{
			"unknown status ignored",
			&progress.User{Progress: []progress.Entry{{LevelID: 4, Status: "COMPLETED"}, completed(1)}},
			"Eco Beginner",
		},
		{
			"duplicates tolerated",
			&progress.User{Progress: []progress.Entry{completed(3), completed(3), completed(2)}},
			"Resource Guardian",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.user))
		})
	}
}

func TestLabelTable(t *testing.T) {
	want := map[int]string{
		1: "Eco Beginner",
		2: "Climate Champion",
		3: "Resource Guardian",
		4: "Green Practitioner",
		5: "Climate Aware Advocate",
	}
	for id, label := range want {
		assert.Equal(t, label, Label(id), "level %d", id)
	}
	assert.Equal(t, FallbackLabel, Label(6))
	assert.Equal(t, FallbackLabel, Label(0))
}

func TestTiersContiguous(t *testing.T) {
	ts := Tiers()
	for i, tier := range ts {
		assert.Equal(t, i+1, tier.LevelID, "tier table must be contiguous from 1")
		assert.NotEmpty(t, tier.Label)
	}

	// Tiers hands out a copy.
	ts[0].Label = "mutated"
	assert.Equal(t, "Eco Beginner", Label(1))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		user *progress.User
		want Result
	}{
		{"nil", nil, Result{Label: DefaultLabel, Mapped: true}},
		{
			"mapped",
			&progress.User{Progress: []progress.Entry{completed(4)}},
			Result{Label: "Green Practitioner", LevelID: 4, HasCompleted: true, Mapped: true},
		},
		{
			"unmapped",
			&progress.User{Progress: []progress.Entry{completed(12)}},
			Result{Label: FallbackLabel, LevelID: 12, HasCompleted: true, Mapped: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Evaluate(tt.user)); diff != "" {
				t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveOrderIndependent(t *testing.T) {
	entries := []progress.Entry{
		completed(1),
		{LevelID: 9, Status: progress.StatusInProgress},
		completed(4),
		{LevelID: 7, Status: progress.StatusNotStarted},
		completed(2),
	}
	want := Resolve(&progress.User{Progress: entries})
	assert.Equal(t, "Green Practitioner", want)

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := append([]progress.Entry(nil), entries...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Resolve(&progress.User{Progress: shuffled}))
	}
}

func TestResolveIgnoresNonCompletedLevelIDs(t *testing.T) {
	base := []progress.Entry{completed(2)}
	want := Resolve(&progress.User{Progress: base})

	for _, id := range []int{-1, 0, 3, 5, 100} {
		for _, st := range []progress.Status{progress.StatusInProgress, progress.StatusNotStarted, "skipped"} {
			u := &progress.User{Progress: append([]progress.Entry{{LevelID: id, Status: st}}, base...)}
			assert.Equal(t, want, Resolve(u), "level %d status %s", id, st)
		}
	}
}

func TestResolveIdempotentAndPure(t *testing.T) {
	u := &progress.User{Progress: []progress.Entry{completed(3), completed(1)}}
	snapshot := append([]progress.Entry(nil), u.Progress...)

	first := Resolve(u)
	second := Resolve(u)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, u.Progress, "input must not be mutated")
}

func TestResolveConcurrent(t *testing.T) {
	u := &progress.User{Progress: []progress.Entry{completed(5), completed(2)}}

	var g errgroup.Group
	results := make([]string, 64)
	for i := range results {
		g.Go(func() error {
			results[i] = Resolve(u)
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	for _, got := range results {
		assert.Equal(t, "Climate Aware Advocate", got)
	}
}
