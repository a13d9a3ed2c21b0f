package lang

// Node is the interface all AST nodes implement.
type Node interface {
	nodeTag()
}

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
)

func (o Op) String() string {
	if o == OpSub {
		return "-"
	}
	return "+"
}

// Keyword is a relative date/time keyword.
type Keyword int

const (
	KeywordToday Keyword = iota
	KeywordNow
	KeywordTomorrow
	KeywordYesterday
)

func (k Keyword) String() string {
	switch k {
	case KeywordNow:
		return "now"
	case KeywordTomorrow:
		return "tomorrow"
	case KeywordYesterday:
		return "yesterday"
	default:
		return "today"
	}
}

// DateLit represents a calendar date like "2025/09/27".
type DateLit struct {
	Year  uint32
	Month int
	Day   int
}

// TimeLit represents a time of day like "14:30" or "2pm".
type TimeLit struct {
	Hour   int
	Minute int
}

// DateTimeLit represents a date followed by a time of day, "2025/09/27 14:30".
type DateTimeLit struct {
	Year   uint32
	Month  int
	Day    int
	Hour   int
	Minute int
}

// KeywordRef represents today, now, tomorrow or yesterday.
type KeywordRef struct {
	Keyword Keyword
}

// DurationLit represents a magnitude with a unit, "3 days".
type DurationLit struct {
	Magnitude int64
	Unit      Unit
}

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Op    Op
	Left  Node
	Right Node
}

func (*DateLit) nodeTag()     {}
func (*TimeLit) nodeTag()     {}
func (*DateTimeLit) nodeTag() {}
func (*KeywordRef) nodeTag()  {}
func (*DurationLit) nodeTag() {}
func (*BinaryExpr) nodeTag()  {}
