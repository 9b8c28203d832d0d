package models

import "sort"

const LedgerVersion = 1

// LedgerDocument is the unit of persistence of the local ledger.
type LedgerDocument struct {
	Version int                       `json:"version"`
	Rows    map[string]*CounterRecord `json:"rows"`
}

func NewLedgerDocument() *LedgerDocument {
	return &LedgerDocument{
		Version: LedgerVersion,
		Rows:    make(map[string]*CounterRecord),
	}
}

func (d *LedgerDocument) Len() int {
	return len(d.Rows)
}

// Sorted returns the rows most recently seen first; ties are ordered by key.
func (d *LedgerDocument) Sorted() []*CounterRecord {
	rows := make([]*CounterRecord, 0, len(d.Rows))
	for k, r := range d.Rows {
		if r == nil {
			continue
		}
		if r.Key == "" {
			r.Key = k
		}
		rows = append(rows, r)
	}
	SortByLastSeen(rows)
	return rows
}

func SortByLastSeen(rows []*CounterRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LastSeenAt != rows[j].LastSeenAt {
			return rows[i].LastSeenAt > rows[j].LastSeenAt
		}
		return rows[i].Key < rows[j].Key
	})
}
