package enrollments

import "strings"

// SponsorNameParts is the token split applied to the free-text sponsor field:
// the first whitespace token is the first name, everything after it joins into
// the last name.
type SponsorNameParts struct {
	FirstName string
	LastName  string
}

// SplitSponsorName tokenizes a free-text sponsor name for matching.
// Returns false when the input has no usable tokens.
func SplitSponsorName(input string) (SponsorNameParts, bool) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return SponsorNameParts{}, false
	}
	return SponsorNameParts{
		FirstName: tokens[0],
		LastName:  strings.Join(tokens[1:], " "),
	}, true
}
