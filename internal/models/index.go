package models

// Per-building row indexes, built once before a batch run so each building's
// scoring is an O(1) lookup instead of a table scan.

// IndexResidents groups resident rows by building id.
func IndexResidents(residents []Resident) map[string][]Resident {
	idx := make(map[string][]Resident, len(residents))
	for _, r := range residents {
		idx[r.BuildingID] = append(idx[r.BuildingID], r)
	}
	return idx
}

// IndexTransactions groups transaction rows by building id.
func IndexTransactions(transactions []Transaction) map[string][]Transaction {
	idx := make(map[string][]Transaction, len(transactions))
	for _, t := range transactions {
		idx[t.BuildingID] = append(idx[t.BuildingID], t)
	}
	return idx
}

// IndexRepairs groups repair rows by building id.
func IndexRepairs(repairs []Repair) map[string][]Repair {
	idx := make(map[string][]Repair, len(repairs))
	for _, r := range repairs {
		idx[r.BuildingID] = append(idx[r.BuildingID], r)
	}
	return idx
}
