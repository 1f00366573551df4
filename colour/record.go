package colour

// Record pairs a representative colour with the number of source
// pixels it stands for. Records are immutable output values.
type Record struct {
	RGB   RGB `json:"rgb"`
	Count int `json:"count"`
}

// Hex returns the record's colour as a "#RRGGBB" hex string.
func (r Record) Hex() string {
	return r.RGB.Hex()
}
