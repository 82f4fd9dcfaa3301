package progress

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoloop/ecoloop/internal/store"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantNil  bool
		wantLen  int
		wantErr  bool
		wantName string
	}{
		{name: "null document", raw: `null`, wantNil: true},
		{name: "empty object", raw: `{}`, wantLen: 0},
		{name: "null progress", raw: `{"progress": null}`, wantLen: 0},
		{name: "empty progress", raw: `{"progress": []}`, wantLen: 0},
		{
			name:     "entries",
			raw:      `{"name": "ada", "coins": 40, "progress": [{"level_id": 2, "status": "completed"}, {"level_id": 3, "status": "in_progress"}]}`,
			wantLen:  2,
			wantName: "ada",
		},
		{name: "extra fields allowed", raw: `{"progress": [{"level_id": 1, "status": "completed", "score": 9}], "avatar": "x"}`, wantLen: 1},
		{name: "not JSON", raw: `{progress`, wantErr: true},
		{name: "array document", raw: `[]`, wantErr: true},
		{name: "string level id", raw: `{"progress": [{"level_id": "2", "status": "completed"}]}`, wantErr: true},
		{name: "fractional level id", raw: `{"progress": [{"level_id": 2.5, "status": "completed"}]}`, wantErr: true},
		{name: "missing status", raw: `{"progress": [{"level_id": 2}]}`, wantErr: true},
		{name: "progress not array", raw: `{"progress": {"level_id": 2}}`, wantErr: true},
		{name: "negative coins", raw: `{"coins": -1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Decode([]byte(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSnapshot)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, u)
				return
			}
			require.NotNil(t, u)
			assert.NotNil(t, u.Progress)
			assert.Len(t, u.Progress, tt.wantLen)
			assert.Equal(t, tt.wantName, u.Name)
		})
	}
}

func TestDecodeEntries(t *testing.T) {
	u, err := Decode([]byte(`{"progress": [{"level_id": 5, "status": "completed"}, {"level_id": 3, "status": "completed"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{LevelID: 5, Status: StatusCompleted},
		{LevelID: 3, Status: StatusCompleted},
	}, u.Progress)
}

func TestDecodeIntegralLevelIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"trailing zero fraction", `2.0`, 2},
		{"exponent", `5e0`, 5},
		{"scaled exponent", `0.3e1`, 3},
		{"negative", `-4`, -4},
		{"above int range", `99999999999999999999`, math.MaxInt},
		{"below int range", `-99999999999999999999`, math.MinInt},
		{"huge exponent", `1e400`, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"progress": [{"level_id": ` + tt.raw + `, "status": "completed"}]}`
			u, err := Decode([]byte(raw))
			require.NoError(t, err)
			require.Len(t, u.Progress, 1)
			assert.Equal(t, tt.want, u.Progress[0].LevelID)
		})
	}
}

func TestDecodeExponentCoins(t *testing.T) {
	u, err := Decode([]byte(`{"coins": 1e2, "progress": []}`))
	require.NoError(t, err)
	assert.Equal(t, 100, u.Coins)
}

func TestHighestCompleted(t *testing.T) {
	var nilUser *User
	_, ok := nilUser.HighestCompleted()
	assert.False(t, ok)

	u := &User{Progress: []Entry{
		{LevelID: 7, Status: StatusInProgress},
		{LevelID: -2, Status: StatusCompleted},
		{LevelID: -1, Status: StatusCompleted},
	}}
	id, ok := u.HighestCompleted()
	assert.True(t, ok)
	assert.Equal(t, -1, id)
	assert.Len(t, u.Completed(), 2)
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusCompleted.Known())
	assert.False(t, Status("done").Known())
	assert.Equal(t, "In progress", StatusInProgress.DisplayName())
	assert.Equal(t, "done", Status("done").DisplayName())
}

func TestLoad(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ecoloop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	rec, err := st.Users().Create(ctx, "ada")
	require.NoError(t, err)
	require.NoError(t, st.Progress().Upsert(ctx, store.ProgressData{UserID: rec.ID, LevelID: 2, Status: "completed"}))
	require.NoError(t, st.Progress().Upsert(ctx, store.ProgressData{UserID: rec.ID, LevelID: 3, Status: "in_progress"}))

	u, err := Load(ctx, st.Users(), st.Progress(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Name)
	assert.Equal(t, []Entry{
		{LevelID: 2, Status: StatusCompleted},
		{LevelID: 3, Status: StatusInProgress},
	}, u.Progress)

	_, err = Load(ctx, st.Users(), st.Progress(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
