package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/utils"
)

func TestParsePenaltyKind(t *testing.T) {
	tests := []struct {
		in      string
		want    PenaltyKind
		wantErr bool
	}{
		{in: "GAG", want: KindGag},
		{in: "mute", want: KindMute},
		{in: "Silence", want: KindSilence},
		{in: "BAN", want: KindBan},
		{in: "WARN", want: KindWarn},
		{in: "frozen", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePenaltyKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePenaltyStatus(t *testing.T) {
	got, err := ParsePenaltyStatus("active")
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, got)

	_, err = ParsePenaltyStatus("PENDING")
	assert.Error(t, err)
}

func TestValidFlag(t *testing.T) {
	assert.True(t, ValidFlag("@admin/chat"))
	assert.True(t, ValidFlag("#moderators"))
	assert.True(t, ValidFlag(RootFlag))
	assert.False(t, ValidFlag("admin/chat"))
	assert.False(t, ValidFlag("@"))
	assert.False(t, ValidFlag(""))
}

func TestAdminRecord_Expired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	forever := AdminRecord{}
	assert.False(t, forever.Expired(now))

	ended := AdminRecord{Ends: utils.PointerOf(now.Add(-time.Minute))}
	assert.True(t, ended.Expired(now))

	// Boundary: a grant ending exactly now is expired.
	boundary := AdminRecord{Ends: utils.PointerOf(now)}
	assert.True(t, boundary.Expired(now))

	live := AdminRecord{Ends: utils.PointerOf(now.Add(time.Minute))}
	assert.False(t, live.Expired(now))
}

func TestPenaltyRecord_Permanent(t *testing.T) {
	assert.True(t, (&PenaltyRecord{Duration: 0}).Permanent())
	assert.False(t, (&PenaltyRecord{Duration: 60}).Permanent())
}

func TestScopeHelpers(t *testing.T) {
	assert.True(t, (&AdminRecord{}).Global())
	assert.False(t, (&AdminRecord{ServerID: utils.PointerOf(int32(3))}).Global())
	assert.True(t, (&PenaltyRecord{}).Global())
	assert.False(t, (&PenaltyRecord{ServerID: utils.PointerOf(int32(3))}).Global())
}
