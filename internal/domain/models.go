package domain

import (
	"time"
)

type ChampionID int64

type ChampionClass string

const (
	ClassAssassin ChampionClass = "Assassin"
	ClassFighter  ChampionClass = "Fighter"
	ClassMage     ChampionClass = "Mage"
	ClassMarksman ChampionClass = "Marksman"
	ClassSupport  ChampionClass = "Support"
	ClassTank     ChampionClass = "Tank"
)

var championClasses = map[ChampionClass]struct{}{
	ClassAssassin: {},
	ClassFighter:  {},
	ClassMage:     {},
	ClassMarksman: {},
	ClassSupport:  {},
	ClassTank:     {},
}

func (c ChampionClass) Valid() bool {
	_, ok := championClasses[c]
	return ok
}

type Champion struct {
	ID        ChampionID
	Slug      string // data dragon id, e.g. "MonkeyKing"
	Name      string
	Title     string
	Tags      []ChampionClass
	ImageFull string
}

func (c Champion) HasClass(class ChampionClass) bool {
	for _, tag := range c.Tags {
		if tag == class {
			return true
		}
	}
	return false
}

// Catalog is built once per request and never mutated afterwards, so it is
// safe to read from every fan-out task of that request.
type Catalog struct {
	Version   string
	Champions map[ChampionID]Champion
}

func (c Catalog) Lookup(id ChampionID) (Champion, bool) {
	champ, ok := c.Champions[id]
	return champ, ok
}

// ByClass returns the ids of every champion tagged with class.
func (c Catalog) ByClass(class ChampionClass) map[ChampionID]struct{} {
	ids := make(map[ChampionID]struct{})
	for id, champ := range c.Champions {
		if champ.HasClass(class) {
			ids[id] = struct{}{}
		}
	}
	return ids
}

type Summoner struct {
	PUUID         string
	Name          string
	Level         int64
	ProfileIconID int
	RevisionDate  time.Time
}

type Mastery struct {
	ChampionID           ChampionID
	Level                int // 0-7
	Points               int
	PointsSinceLastLevel int64
	PointsUntilNextLevel int64
	TokensEarned         int
	ChestGranted         bool
	LastPlayTime         time.Time
}

type Summary struct {
	TotalPoints       int
	ChampionsAtLevel7 int
	ChampionsAtLevel6 int
	ChampionsAtLevel5 int
}

func Summarize(masteries []Mastery) Summary {
	var s Summary
	for _, m := range masteries {
		s.TotalPoints += m.Points
		switch m.Level {
		case 7:
			s.ChampionsAtLevel7++
		case 6:
			s.ChampionsAtLevel6++
		case 5:
			s.ChampionsAtLevel5++
		}
	}
	return s
}

// FilterMasteries keeps the records whose champion id is in allowed,
// preserving input order.
func FilterMasteries(masteries []Mastery, allowed map[ChampionID]struct{}) []Mastery {
	filtered := make([]Mastery, 0, len(masteries))
	for _, m := range masteries {
		if _, ok := allowed[m.ChampionID]; ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
