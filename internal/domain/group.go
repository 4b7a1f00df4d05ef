package domain

// GroupByLocation clusters meetings sharing an exact coordinate pair into one
// marker group per location. Meetings without coordinates are skipped, as are
// virtual meetings regardless of whether they carry coordinates. Groups appear
// in order of each coordinate pair's first appearance; members keep input order.
func GroupByLocation(meetings []Meeting) []MarkerGroup {
	index := make(map[Coordinates]int)
	groups := make([]MarkerGroup, 0)

	for _, m := range meetings {
		if m.Coordinates == nil || m.Type == TypeVirtual {
			continue
		}
		key := *m.Coordinates
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MarkerGroup{Coordinates: key})
		}
		groups[i].Meetings = append(groups[i].Meetings, m)
	}

	return groups
}
