package lang

import "time"

// Unit is a duration unit.
type Unit int

const (
	UnitYears Unit = iota
	UnitMonths
	UnitDays
	UnitHours
	UnitMinutes
	UnitSeconds
)

const (
	daysPerYearApprox  = 365
	daysPerMonthApprox = 30
	day                = 24 * time.Hour
)

// unitDef defines a unit with its spellings and its length in elapsed time.
type unitDef struct {
	Unit    Unit
	Full    string // singular name (e.g. "day")
	FullPl  string // plural name (e.g. "days")
	Short   string // one-letter abbreviation, empty if none
	Elapsed time.Duration
}

// Years and months are fixed approximations, not calendar-aware.
var allUnits = []unitDef{
	{Unit: UnitYears, Full: "year", FullPl: "years", Short: "y", Elapsed: daysPerYearApprox * day},
	{Unit: UnitMonths, Full: "month", FullPl: "months", Elapsed: daysPerMonthApprox * day},
	{Unit: UnitDays, Full: "day", FullPl: "days", Short: "d", Elapsed: day},
	{Unit: UnitHours, Full: "hour", FullPl: "hours", Short: "h", Elapsed: time.Hour},
	{Unit: UnitMinutes, Full: "minute", FullPl: "minutes", Short: "m", Elapsed: time.Minute},
	{Unit: UnitSeconds, Full: "second", FullPl: "seconds", Short: "s", Elapsed: time.Second},
}

// unitLookup maps every accepted spelling to its unit. Matching is case-sensitive.
var unitLookup map[string]Unit

func init() {
	unitLookup = make(map[string]Unit, len(allUnits)*3)
	for _, u := range allUnits {
		unitLookup[u.Full] = u.Unit
		unitLookup[u.FullPl] = u.Unit
		if u.Short != "" {
			unitLookup[u.Short] = u.Unit
		}
	}
}

// LookupUnit looks up a unit by singular, plural or one-letter name.
func LookupUnit(name string) (Unit, bool) {
	u, ok := unitLookup[name]
	return u, ok
}

// Elapsed returns the length of one unit.
func (u Unit) Elapsed() time.Duration {
	return allUnits[u].Elapsed
}

func (u Unit) String() string {
	return allUnits[u].FullPl
}

var keywordLookup = map[string]Keyword{
	"today":     KeywordToday,
	"now":       KeywordNow,
	"tomorrow":  KeywordTomorrow,
	"yesterday": KeywordYesterday,
}

// LookupKeyword resolves a bare identifier to a relative keyword.
func LookupKeyword(name string) (Keyword, bool) {
	k, ok := keywordLookup[name]
	return k, ok
}

// IsMeridiem reports whether name is the am or pm suffix.
func IsMeridiem(name string) bool {
	return name == "am" || name == "pm"
}
