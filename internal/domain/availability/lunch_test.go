package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitByLunch(t *testing.T) {
	window := Block{Start: 540, End: 900}

	t.Run("no lunch", func(t *testing.T) {
		assert.Equal(t, []Block{window}, SplitByLunch(window, nil))
	})

	t.Run("lunch outside window", func(t *testing.T) {
		assert.Equal(t, []Block{window}, SplitByLunch(window, &Block{Start: 960, End: 1020}))
	})

	t.Run("lunch overlapping start", func(t *testing.T) {
		assert.Equal(t, []Block{{600, 900}}, SplitByLunch(window, &Block{Start: 500, End: 600}))
	})

	t.Run("empty window", func(t *testing.T) {
		assert.Empty(t, SplitByLunch(Block{Start: 600, End: 600}, nil))
	})
}

func TestSplitByLunch_ContainedLunchReconstitutesWindow(t *testing.T) {
	windows := []Block{{540, 900}, {480, 1080}, {0, 1440}}
	lunches := []Block{{720, 780}, {541, 899}, {600, 601}}

	for _, w := range windows {
		for _, l := range lunches {
			if !(w.Start < l.Start && l.End < w.End) {
				continue
			}
			lunch := l
			got := SplitByLunch(w, &lunch)

			if assert.Len(t, got, 2) {
				assert.Equal(t, w.Start, got[0].Start)
				assert.Equal(t, l.Start, got[0].End)
				assert.Equal(t, l.End, got[1].Start)
				assert.Equal(t, w.End, got[1].End)
				assert.Equal(t, w.Len(), got[0].Len()+l.Len()+got[1].Len())
			}
		}
	}
}
