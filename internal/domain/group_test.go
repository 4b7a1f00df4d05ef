package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	springfield = Coordinates{Lat: 42.0, Lon: -71.0}
	boston      = Coordinates{Lat: 42.36, Lon: -71.06}
)

func TestGroupByLocation(t *testing.T) {
	t.Run("shared coordinates form one group", func(t *testing.T) {
		meetings := []Meeting{
			{Name: "A", Type: TypeInPerson, Coordinates: &springfield},
			{Name: "B", Type: TypeInPerson, Coordinates: &boston},
			{Name: "C", Type: TypeHybrid, Coordinates: &springfield},
		}

		groups := GroupByLocation(meetings)
		require.Len(t, groups, 2)

		assert.Equal(t, springfield, groups[0].Coordinates)
		assert.Equal(t, []string{"A", "C"}, names(groups[0].Meetings), "member order follows catalog order")
		assert.Equal(t, boston, groups[1].Coordinates)
		assert.Equal(t, []string{"B"}, names(groups[1].Meetings))
	})

	t.Run("virtual meetings never mapped", func(t *testing.T) {
		meetings := []Meeting{
			{Name: "V", Type: TypeVirtual, Coordinates: &springfield},
		}
		assert.Empty(t, GroupByLocation(meetings))
	})

	t.Run("nil coordinates skipped", func(t *testing.T) {
		meetings := []Meeting{
			{Name: "NoAddr", Type: TypeInPerson},
			{Name: "Here", Type: TypeInPerson, Coordinates: &boston},
		}
		groups := GroupByLocation(meetings)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"Here"}, names(groups[0].Meetings))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupByLocation(nil))
	})
}

func TestGroupByLocation_Idempotent(t *testing.T) {
	meetings := []Meeting{
		{Name: "A", Type: TypeInPerson, Coordinates: &springfield},
		{Name: "B", Type: TypeInPerson, Coordinates: &springfield},
	}

	first := GroupByLocation(Filter(meetings, Criteria{}))
	second := GroupByLocation(Filter(meetings, Criteria{}))
	assert.Equal(t, first, second)
}
