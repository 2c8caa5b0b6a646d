package framework

import "fmt"

// Dominates checks if point a dominates point b: a is no worse on every axis
// and strictly better on at least one. Both points must have the same length,
// see ValidateDimensions.
func Dominates(a, b ObjectiveSpacePoint) bool {
	better := false
	for i := 0; i < len(a); i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// WeaklyDominates reports whether a is no worse than b on every axis.
func WeaklyDominates(a, b ObjectiveSpacePoint) bool {
	for i := 0; i < len(a); i++ {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

// ValidateDimensions checks that every solution in the pool has the same
// number of objectives and returns that number.
func ValidateDimensions(pool []Solution) (int, error) {
	if len(pool) == 0 {
		return 0, nil
	}
	d := len(pool[0].Objectives)
	for i := 1; i < len(pool); i++ {
		if n := len(pool[i].Objectives); n != d {
			return 0, fmt.Errorf("%w: solution %d has %d objectives, solution 0 has %d", ErrDimensionMismatch, i, n, d)
		}
	}
	return d, nil
}

// NonDominated returns the members of pool that no other member dominates, in
// pool order. Equal vectors never dominate each other, so duplicates survive.
func NonDominated(pool []Solution) ([]Solution, error) {
	if _, err := ValidateDimensions(pool); err != nil {
		return nil, err
	}

	out := make([]Solution, 0, len(pool))
	for i := range pool {
		dominated := false
		for j := range pool {
			if i != j && Dominates(pool[j].Objectives, pool[i].Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, pool[i])
		}
	}
	return out, nil
}

// NonDominatedSort performs non-dominated sorting on the pool. It returns the
// fronts as indices into pool, rank 0 first, and the rank of every member.
func NonDominatedSort(pool []Solution) ([][]int, []int, error) {
	if _, err := ValidateDimensions(pool); err != nil {
		return nil, nil, err
	}
	if len(pool) == 0 {
		return nil, nil, nil
	}

	dominated := make([][]int, len(pool))
	domCount := make([]int, len(pool))
	ranks := make([]int, len(pool))

	// Calculate domination for each member
	for i := 0; i < len(pool); i++ {
		for j := 0; j < len(pool); j++ {
			if i == j {
				continue
			}
			if Dominates(pool[i].Objectives, pool[j].Objectives) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(pool[j].Objectives, pool[i].Objectives) {
				domCount[i]++
			}
		}
	}

	// Find first front
	var current []int
	for i := 0; i < len(pool); i++ {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	var fronts [][]int
	for rank := 0; len(current) > 0; rank++ {
		fronts = append(fronts, current)
		var next []int
		for _, idx := range current {
			ranks[idx] = rank
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					next = append(next, d)
				}
			}
		}
		current = next
	}

	return fronts, ranks, nil
}
