package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalPositiveLeaning(t *testing.T) {
	tests := []struct {
		signal Signal
		want   bool
	}{
		{SignalBullish, true},
		{SignalSlightlyBullish, true},
		{SignalDecreasingFear, true},
		{SignalNeutral, false},
		{SignalBearish, false},
		{SignalIncreasingFear, false},
		{SignalUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.signal), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.signal.PositiveLeaning())
		})
	}
}

func TestRankedRecordIsTopRanked(t *testing.T) {
	r := RankedRecord{Rank: 3}
	assert.True(t, r.IsTopRanked(3))
	assert.False(t, r.IsTopRanked(2))

	unranked := RankedRecord{}
	assert.False(t, unranked.IsTopRanked(3))
}
