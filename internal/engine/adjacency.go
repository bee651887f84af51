package engine

// IsAdjacent applies explicit links, the Schengen zone and Schengen links. Under the
// Patriot Act the United States only borders Canada.
func (w *World) IsAdjacent(here, there string) bool {
	if w.HasMarker(MarkerPatriotAct) && (here == UnitedStates || there == UnitedStates) {
		return here == Canada || there == Canada
	}
	a, b := w.get(here), w.get(there)
	if a.IsLinked(there) || b.IsLinked(here) {
		return true
	}
	if a.Schengen && b.Schengen {
		return true
	}
	return (a.SchengenLink && b.Schengen) || (a.Schengen && b.SchengenLink)
}

// Neighbours lists every country adjacent to name, in board order.
func (w *World) Neighbours(name string) []string {
	return w.Names(func(c *Country) bool { return c.Name != name && w.IsAdjacent(name, c.Name) })
}

func (w *World) AdjacentCountryHasCell(name string) bool {
	for _, n := range w.Neighbours(name) {
		if w.get(n).TotalCells(true) > 0 {
			return true
		}
	}
	return false
}

// CountryDistance is the number of adjacency steps between two countries, -1 if unreachable.
func (w *World) CountryDistance(from, to string) int {
	if from == to {
		return 0
	}
	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range w.Neighbours(cur) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			if n == to {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}
