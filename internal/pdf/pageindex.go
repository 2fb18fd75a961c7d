package pdf

import (
	"strconv"
	"strings"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// PageIndexList is an ordered list of 1-based page numbers. Duplicates and
// omissions are allowed.
type PageIndexList []int

// ParsePageIndexList parses a comma-separated list such as "3, 1,2".
// Whitespace around each token is ignored; any empty or non-numeric token
// fails the whole list.
func ParsePageIndexList(op, input string) (PageIndexList, error) {
	if strings.TrimSpace(input) == "" {
		return nil, pdferrors.Validation(op, "page list cannot be empty")
	}

	tokens := strings.Split(input, ",")
	list := make(PageIndexList, 0, len(tokens))
	for pos, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, pdferrors.Validation(op, "empty page number at position %d", pos+1)
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, pdferrors.Validation(op, "invalid page number %q", token)
		}
		list = append(list, n)
	}
	return list, nil
}

// Validate checks every index against the page count of the source
func (l PageIndexList) Validate(op string, pageCount int) error {
	if len(l) == 0 {
		return pdferrors.Validation(op, "no pages selected")
	}
	for _, n := range l {
		if n < 1 || n > pageCount {
			return pdferrors.Validation(op, "page %d is out of range (1-%d)", n, pageCount)
		}
	}
	return nil
}

// AllPages returns 1..n
func AllPages(n int) PageIndexList {
	return PageRange(1, n)
}

// PageRange returns from..to inclusive, or nil when the range is empty
func PageRange(from, to int) PageIndexList {
	if to < from {
		return nil
	}
	list := make(PageIndexList, 0, to-from+1)
	for i := from; i <= to; i++ {
		list = append(list, i)
	}
	return list
}

// String renders the list in the same comma-separated form it is parsed from
func (l PageIndexList) String() string {
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
