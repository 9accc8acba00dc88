package domain

// Value is one cell of a Dataset. The zero Value is missing.
type Value struct {
	Text  string `json:"text"`
	Valid bool   `json:"valid"`
}

// Present wraps text as a non-missing Value
func Present(text string) Value {
	return Value{Text: text, Valid: true}
}

// Missing returns a missing Value
func Missing() Value {
	return Value{}
}

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool {
	return !v.Valid
}

// String renders a missing value as the empty string
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Text
}

// Record is one row of a Dataset, aligned with its Columns
type Record []Value

// Dataset is an ordered table of Records sharing one column set.
// Pipeline stages treat a Dataset as immutable and return a new one.
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// NewDataset creates an empty dataset with the given columns
func NewDataset(columns ...string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Width returns the number of columns
func (d *Dataset) Width() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of name, or -1
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is one of the columns
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Column returns a copy of the named column's values
func (d *Dataset) Column(name string) ([]Value, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]Value, len(d.Records))
	for i, rec := range d.Records {
		values[i] = rec[idx]
	}
	return values, true
}

// Clone returns a deep copy
func (d *Dataset) Clone() *Dataset {
	out := NewDataset(d.Columns...)
	out.Records = make([]Record, len(d.Records))
	for i, rec := range d.Records {
		out.Records[i] = append(Record(nil), rec...)
	}
	return out
}

// Append adds a record. It panics if the record width does not match.
func (d *Dataset) Append(rec Record) {
	if len(rec) != len(d.Columns) {
		panic("domain: record width does not match dataset columns")
	}
	d.Records = append(d.Records, rec)
}
