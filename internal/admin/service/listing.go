package service

// AllRows disables the page size cap on list operations. Callers that want
// the whole remainder pass it as the amount.
const AllRows = -1

// paginate slices a filtered, name-ordered result set. from is clamped to
// the valid range. A negative amount means "the rest"; zero is an empty
// page, so the returned page never exceeds amount rows. The caller reports
// the pre-pagination total separately.
func paginate[T any](items []T, from, amount int) []T {
	if amount == 0 {
		return nil
	}
	if from < 0 {
		from = 0
	}
	if from >= len(items) {
		return nil
	}
	end := len(items)
	if amount > 0 && from+amount < end {
		end = from + amount
	}
	return items[from:end]
}

// filterSlice keeps the items the predicate accepts, preserving order.
func filterSlice[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
