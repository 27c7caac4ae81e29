package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtractOne(t *testing.T) {
	free := Block{Start: 540, End: 900}

	tests := []struct {
		name    string
		blocker Block
		want    []Block
	}{
		{"no overlap before", Block{Start: 400, End: 540}, []Block{free}},
		{"no overlap after", Block{Start: 900, End: 960}, []Block{free}},
		{"covers everything", Block{Start: 500, End: 1000}, nil},
		{"exact cover", Block{Start: 540, End: 900}, nil},
		{"strictly inside", Block{Start: 600, End: 660}, []Block{{540, 600}, {660, 900}}},
		{"left edge", Block{Start: 500, End: 600}, []Block{{600, 900}}},
		{"left edge aligned", Block{Start: 540, End: 600}, []Block{{600, 900}}},
		{"right edge", Block{Start: 840, End: 960}, []Block{{540, 840}}},
		{"right edge aligned", Block{Start: 840, End: 900}, []Block{{540, 840}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubtractOne(free, tt.blocker))
		})
	}
}

func TestSubtractAll_EmptyBlockersIsIdentity(t *testing.T) {
	frees := []Block{{540, 720}, {780, 900}}
	assert.Equal(t, frees, SubtractAll(frees, nil))
	assert.Equal(t, frees, SubtractAll(frees, []Block{}))
}

func TestSubtractAll_SequentialBlockers(t *testing.T) {
	frees := []Block{{540, 900}}
	blockers := []Block{{600, 630}, {700, 720}, {880, 950}}

	all := SubtractAll(frees, blockers)
	stepwise := SubtractAll(SubtractAll(SubtractAll(frees, blockers[:1]), blockers[1:2]), blockers[2:])

	assert.Equal(t, []Block{{540, 600}, {630, 700}, {720, 880}}, all)
	assert.Equal(t, all, stepwise)
}

func TestSubtractAll_NeverOverlapsOrInverts(t *testing.T) {
	frees := []Block{{0, 300}, {400, 800}, {900, 1440}}
	blockers := []Block{{100, 450}, {250, 260}, {500, 950}, {1000, 1001}, {1439, 1500}}

	got := SubtractAll(frees, blockers)
	for i, b := range got {
		assert.Less(t, b.Start, b.End, "block %d inverted: %+v", i, b)
		for j := i + 1; j < len(got); j++ {
			assert.False(t, b.Overlaps(got[j]), "blocks %+v and %+v overlap", b, got[j])
		}
		for _, blocker := range blockers {
			assert.False(t, b.Overlaps(blocker), "block %+v still overlaps %+v", b, blocker)
		}
	}
}

func TestSubtractAll_ShortCircuitsWhenConsumed(t *testing.T) {
	got := SubtractAll([]Block{{540, 600}}, []Block{{0, 1440}, {540, 550}})
	assert.Empty(t, got)
}

func TestIsFullDay(t *testing.T) {
	assert.True(t, IsFullDay(Block{0, 1440}))
	assert.True(t, IsFullDay(Block{0, 1500}))
	assert.False(t, IsFullDay(Block{1, 1440}))
	assert.False(t, IsFullDay(Block{0, 1439}))
}
