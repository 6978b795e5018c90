package diag

// Bag keeps records in detection order.
type Bag struct {
	items []Record
}

func NewBag(capHint int) *Bag {
	if capHint < 0 {
		capHint = 0
	}
	return &Bag{items: make([]Record, 0, capHint)}
}

func (b *Bag) Add(r Record) {
	b.items = append(b.items, r)
}

// Len returns the number of records added so far.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the records in insertion order, or nil when empty. The
// slice shares storage with the bag.
func (b *Bag) Items() []Record {
	if len(b.items) == 0 {
		return nil
	}
	return b.items
}

// Counts tallies records by severity.
type Counts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Total is the number of counted records.
func (c Counts) Total() int {
	return c.Errors + c.Warnings
}

func Count(records []Record) Counts {
	var c Counts
	for i := range records {
		switch records[i].Severity {
		case SevError:
			c.Errors++
		case SevWarning:
			c.Warnings++
		}
	}
	return c
}

func HasErrors(records []Record) bool {
	for i := range records {
		if records[i].Severity >= SevError {
			return true
		}
	}
	return false
}
