package domain

import "time"

// Category is a skill domain a player can be tiered in. "overall" is virtual:
// it means "no filter" and is never stored.
type Category string

const (
	CategoryMelee   Category = "melee"
	CategoryFruit   Category = "fruit"
	CategorySword   Category = "sword"
	CategoryGun     Category = "gun"
	CategoryBounty  Category = "bounty"
	CategoryOverall Category = "overall"
)

// Categories lists the storable categories in display order.
var Categories = []Category{
	CategoryMelee,
	CategoryFruit,
	CategorySword,
	CategoryGun,
	CategoryBounty,
}

// Valid reports whether c is a storable category (overall excluded).
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Grade is a tier grade, SS highest.
type Grade string

const (
	GradeSS Grade = "SS"
	GradeS  Grade = "S"
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeE  Grade = "E"
)

var gradeOrder = map[Grade]int{
	GradeSS: 0,
	GradeS:  1,
	GradeA:  2,
	GradeB:  3,
	GradeC:  4,
	GradeD:  5,
	GradeE:  6,
}

// Valid reports whether g is a known grade.
func (g Grade) Valid() bool {
	_, ok := gradeOrder[g]
	return ok
}

// Ordinal returns the grade's position in the ordering, 0 = SS (highest).
// Unknown grades sort last.
func (g Grade) Ordinal() int {
	if n, ok := gradeOrder[g]; ok {
		return n
	}
	return len(gradeOrder)
}

// Tier is a player's grade within one category. At most one tier exists per
// (player, category) pair; writes for an existing pair update in place.
type Tier struct {
	ID        int64     `json:"id" db:"id"`
	PlayerID  int64     `json:"player_id" db:"player_id"`
	Category  Category  `json:"category" db:"category"`
	Grade     Grade     `json:"grade" db:"grade"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
