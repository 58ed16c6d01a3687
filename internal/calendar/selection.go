package calendar

import "github.com/MazharElstub/The-Weekend-sub002/internal/model"

type SelectionAction string

const (
	SelectionAdd    SelectionAction = "add"
	SelectionRemove SelectionAction = "remove"
)

// IsContiguousSelection reports whether the selected days form a single
// contiguous run within the ordered set of available off-day options. The
// empty selection is contiguous.
func IsContiguousSelection(selection []model.Weekday, available []model.Weekday) bool {
	idx, ok := selectionIndexes(selection, available)
	if !ok {
		return false
	}
	if len(idx) == 0 {
		return true
	}
	return idx[len(idx)-1]-idx[0] == len(idx)-1
}

// IsActionAllowed decides whether adding or removing a day keeps the
// selection a single contiguous run. Adds must extend a boundary (or start a
// fresh selection); removes must peel one of the two ends, since removing an
// interior day would fracture the run.
func IsActionAllowed(selection []model.Weekday, day model.Weekday, action SelectionAction, available []model.Weekday) bool {
	idx, ok := selectionIndexes(selection, available)
	if !ok {
		return false
	}
	dayIdx := indexOf(day, available)
	if dayIdx < 0 {
		return false
	}

	switch action {
	case SelectionAdd:
		if containsInt(idx, dayIdx) {
			return false
		}
		if len(idx) == 0 {
			return true
		}
		return dayIdx == idx[0]-1 || dayIdx == idx[len(idx)-1]+1
	case SelectionRemove:
		if len(idx) == 0 || !containsInt(idx, dayIdx) {
			return false
		}
		return dayIdx == idx[0] || dayIdx == idx[len(idx)-1]
	default:
		return false
	}
}

// selectionIndexes maps the selection onto sorted positions within available;
// ok is false when a selected day is not an available option.
func selectionIndexes(selection []model.Weekday, available []model.Weekday) ([]int, bool) {
	idx := make([]int, 0, len(selection))
	for _, d := range selection {
		i := indexOf(d, available)
		if i < 0 {
			return nil, false
		}
		idx = append(idx, i)
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && idx[j] < idx[j-1]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx, true
}

func indexOf(day model.Weekday, available []model.Weekday) int {
	for i, d := range available {
		if d == day {
			return i
		}
	}
	return -1
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
