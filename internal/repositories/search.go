package repositories

import "strings"

type SearchMatch int

const (
	MatchContains SearchMatch = iota
	MatchPrefix
	MatchExact
)

// SearchFilter is free text matched case-insensitively against notification
// title and message.
type SearchFilter struct {
	text  string
	match SearchMatch
}

func NewSearchFilter(text string, match SearchMatch) SearchFilter {
	return SearchFilter{
		text:  strings.TrimSpace(text),
		match: match,
	}
}

func NewContainsSearchFilter(text string) SearchFilter {
	return NewSearchFilter(text, MatchContains)
}

func NewPrefixSearchFilter(text string) SearchFilter {
	return NewSearchFilter(text, MatchPrefix)
}

func (f SearchFilter) Text() string {
	return f.text
}

func (f SearchFilter) IsEmpty() bool {
	return f.text == ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern is the ILIKE pattern for the filter. Wildcards typed by the user
// match literally.
func (f SearchFilter) Pattern() string {
	escaped := likeEscaper.Replace(f.text)

	switch f.match {
	case MatchExact:
		return escaped
	case MatchPrefix:
		return escaped + "%"
	default:
		return "%" + escaped + "%"
	}
}
