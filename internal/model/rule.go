package model

// Direction filters rules by the sign of the transaction amount.
type Direction string

const (
	DirectionAny Direction = "any"
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Rule assigns category and counter-party labels to transactions whose
// description contains Needle (case-insensitive). Higher Priority wins
// when several rules match.
type Rule struct {
	ID         string
	Needle     string
	Category   string
	Party      string
	Direction  Direction
	Priority   int
	StoreScope string // restrict to one store, empty = all stores
}
