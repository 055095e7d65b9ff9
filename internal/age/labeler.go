package age

import "github.com/Nomadcxx/photostamp/internal/dateparse"

// Labeler renders the text stamped onto a photo for a given date. The two
// stamping modes share extraction and differ only in this rendering step.
type Labeler interface {
	Label(d dateparse.Date) string
}

// AgeLabeler renders baby-age labels relative to a birth date.
type AgeLabeler struct {
	calc Calculator
}

// NewAgeLabeler returns an AgeLabeler anchored at the given birth date.
func NewAgeLabeler(birth dateparse.Date) AgeLabeler {
	return AgeLabeler{calc: NewCalculator(birth)}
}

func (l AgeLabeler) Label(d dateparse.Date) string {
	return l.calc.Describe(d)
}

// TimestampLabeler renders plain "YYYY.MM.DD" labels.
type TimestampLabeler struct{}

func (TimestampLabeler) Label(d dateparse.Date) string {
	return Timestamp(d)
}
