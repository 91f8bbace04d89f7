// Package pagination turns page/pageSize query values into an offset/limit
// window over a newest-first listing.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 3
)

type Params struct {
	Page     int
	PageSize int
}

// Parser applies defaults and the page size ceiling.
type Parser struct {
	DefaultSize int
	MaxSize     int
}

func NewParser(defaultSize, maxSize int) Parser {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	return Parser{DefaultSize: defaultSize, MaxSize: maxSize}
}

// Parse reads raw query values. A value that does not start with a positive
// integer ("", "abc", "0", "-2") falls back to the default; it is never
// clamped to 1. Trailing garbage after the digits is ignored ("2x" is 2).
//
// A page so large that its offset would not fit in an int is lowered to
// MaxPage. That page still lies far past the last row, so the caller gets
// the same empty window it asked for instead of an overflowed offset.
func (p Parser) Parse(page, pageSize string) Params {
	params := Params{Page: DefaultPage, PageSize: p.DefaultSize}
	if n, ok := ParseLeadingInt(pageSize); ok && n > 0 {
		params.PageSize = min(n, p.MaxSize)
	}
	if n, ok := ParseLeadingInt(page); ok && n > 0 {
		params.Page = min(n, MaxPage(params.PageSize))
	}
	return params
}

// MaxPage is the largest page whose offset plus pageSize still fits in an
// int.
func MaxPage(pageSize int) int {
	if pageSize <= 0 {
		return math.MaxInt
	}
	return (math.MaxInt-pageSize)/pageSize + 1
}

// Offset saturates instead of overflowing for hand-built Params, such as
// the page a stored cursor points at.
func (p Params) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page > MaxPage(p.PageSize) {
		return (MaxPage(p.PageSize) - 1) * p.PageSize
	}
	return (p.Page - 1) * p.PageSize
}

func (p Params) Limit() int {
	return p.PageSize
}

// TotalPages is ceil(total / pageSize); zero rows means zero pages.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// ParseLeadingInt parses an optional sign and the digits that follow it,
// skipping leading whitespace, and ignores whatever comes after.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
