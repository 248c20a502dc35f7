package council

import "regexp"

// The judge reports its decision with exactly one of five tokens. Both the
// Unicode much-greater-than (U+226B) and the ASCII digraph >> are accepted.
// The last token in the reply wins; a reply with no token is unparseable.
var verdictToken = regexp.MustCompile(`\[\[(A≫B|A>>B|A>B|A=B|B>A|B>>A|B≫A)\]\]`)

var verdictMargins = map[string]int{
	"A≫B":  2,
	"A>>B": 2,
	"A>B":  1,
	"A=B":  0,
	"B>A":  -1,
	"B>>A": -2,
	"B≫A":  -2,
}

// ParseVerdict extracts the margin from a judge reply. The margin favors the
// first-presented answer (A) when positive. ok is false when the reply
// contains no verdict token.
func ParseVerdict(reply string) (margin int, ok bool) {
	matches := verdictToken.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return 0, false
	}
	last := matches[len(matches)-1][1]
	return verdictMargins[last], true
}
