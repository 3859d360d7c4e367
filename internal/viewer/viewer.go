// Package viewer implements the read-only floor inspection rules: picking
// the latest layout version per floor and deciding which floor may be
// deleted.
package viewer

import (
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// Summary is one saved layout version as listed by the backend.
type Summary struct {
	PlanID      uuid.UUID `json:"planId"`
	FloorNumber int       `json:"floorNumber"`
	Version     int       `json:"version"`
	IsPublished bool      `json:"isPublished"`
}

// LatestPerFloor reduces the summary list to the newest version of each
// floor. The input arrives pre-sorted version-descending within a floor, so
// the first entry seen per floor wins. The result is ordered by floor.
func LatestPerFloor(summaries []Summary) []Summary {
	seen := map[int]bool{}
	latest := make([]Summary, 0, len(summaries))
	for _, s := range summaries {
		if seen[s.FloorNumber] {
			continue
		}
		seen[s.FloorNumber] = true
		latest = append(latest, s)
	}
	sort.Slice(latest, func(i, j int) bool {
		return latest[i].FloorNumber < latest[j].FloorNumber
	})
	return latest
}

// FloorOptions lists the available floor numbers, sorted, as display strings.
func FloorOptions(latest []Summary) []string {
	options := make([]string, len(latest))
	for i, s := range latest {
		options[i] = strconv.Itoa(s.FloorNumber)
	}
	return options
}

// DefaultFloor is the floor shown first: the lowest-numbered one.
func DefaultFloor(latest []Summary) (int, bool) {
	if len(latest) == 0 {
		return 0, false
	}
	return latest[0].FloorNumber, true
}

// MaxFloor returns the highest floor number present.
func MaxFloor(latest []Summary) int {
	max := 0
	for _, s := range latest {
		if s.FloorNumber > max {
			max = s.FloorNumber
		}
	}
	return max
}

// Deletable reports whether a floor's layout may be removed: only the
// building's topmost floor, and only while it is unpublished. Interior
// floors and published layouts are never deletable.
func Deletable(s Summary, maxFloor int) bool {
	return s.FloorNumber == maxFloor && !s.IsPublished
}
