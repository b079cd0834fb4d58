package dex

import "fmt"

// --- Elemental types ---

// Type is one of the 18 elemental types. Stored lowercase, matching the
// upstream API and the generated JSON files.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
)

// AllTypes lists every elemental type. TypeCount is the coverage ceiling.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

const TypeCount = 18

// Valid reports whether t is one of the 18 known types.
func (t Type) Valid() bool {
	for _, k := range AllTypes {
		if t == k {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// --- Stats ---

// BaseStats holds the six base stats of a species form.
type BaseStats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"spAtk"`
	SpDef   int `json:"spDef"`
	Speed   int `json:"speed"`
}

// Total returns the base stat total.
func (s BaseStats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpAtk + s.SpDef + s.Speed
}

// --- Evolution stages and lines ---

// Stage is a single species form within an evolution line.
type Stage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Types     []Type    `json:"types"`
	Sprite    string    `json:"sprite"`
	Stats     BaseStats `json:"stats"`
	Stage     int       `json:"stage"` // 0 = base form
	Locations []string  `json:"locations"`
}

func (s Stage) String() string {
	return fmt.Sprintf("#%d %s", s.ID, s.Name)
}

// EvolutionLine is one linear path through a species' evolutionary tree —
// the atomic unit the game trades in. Immutable once built.
type EvolutionLine struct {
	// LineID is the base stage's species id; unique within one game's
	// dataset except for branch siblings, which share it and are
	// distinguished by BranchIndex.
	LineID    int     `json:"lineId"`
	Stages    []Stage `json:"stages"`
	Types     []Type  `json:"types"` // always equals Stages[0].Types
	IsStarter bool    `json:"isStarter"`

	// BranchIndex is set only when the originating chain branches
	// (Eevee-style). nil means the chain was linear.
	BranchIndex *int `json:"branchIndex,omitempty"`
}

// Base returns the line's base stage.
func (l EvolutionLine) Base() Stage {
	return l.Stages[0]
}

// Final returns the line's last stage.
func (l EvolutionLine) Final() Stage {
	return l.Stages[len(l.Stages)-1]
}

// HasStage reports whether any stage in the line has the given species id.
func (l EvolutionLine) HasStage(id int) bool {
	for _, s := range l.Stages {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (l EvolutionLine) String() string {
	if len(l.Stages) == 0 {
		return fmt.Sprintf("line %d (empty)", l.LineID)
	}
	out := l.Stages[0].Name
	for _, s := range l.Stages[1:] {
		out += " → " + s.Name
	}
	return out
}
