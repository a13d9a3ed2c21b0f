package mcpserver

// GrammarGuide describes the expression language for LLM consumers.
const GrammarGuide = `# tcalc expression grammar

One expression per call. Terms are joined with + or -, evaluated left to right.

    expr     := term (('+' | '-') term)*
    term     := date | datetime | time | duration | keyword
    date     := YEAR '/' MONTH '/' DAY              e.g. 2025/09/27
    datetime := date HOUR ':' MINUTE                e.g. 2025/09/27 14:30
    time     := HOUR ':' MINUTE | HOUR ('am'|'pm')   e.g. 14:30, 2pm
    duration := NUMBER UNIT                         e.g. 3 days, 90m
    keyword  := today | now | tomorrow | yesterday

Units (case-sensitive): years/year/y, months/month, days/day/d,
hours/hour/h, minutes/minute/m, seconds/second/s.
A year is 365 days and a month is 30 days.

## Results

| left     | op  | right    | result                                  |
|----------|-----|----------|-----------------------------------------|
| Date     | +/- | Duration | Date (whole days only, 2h is dropped)   |
| DateTime | +/- | Duration | DateTime                                |
| Time     | +/- | Duration | Time, wrapping around midnight          |
| Duration | +/- | Duration | Duration                                |
| Date     | -   | Date     | Duration                                |

Everything else is an error, including Date + Date and Duration + Date.
now is read in UTC.

## Output

Date 2025-09-29, Time 01:30, DateTime 2025-09-27 14:30 +00:00,
Duration 48h0m0s.
`
