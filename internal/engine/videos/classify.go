package videos

import (
	"regexp"
	"strconv"
	"strings"
)

// Conference classification: infer a canonical conference name and year
// from unstructured video metadata. Pure string matching, no IO.

// confPattern pairs a regex with its canonical display label.
// The optional capture group is the 4-digit conference year.
type confPattern struct {
	re    *regexp.Regexp
	label string
}

// confPatterns is evaluated in declared order; first match wins.
// "PyCon KR" variants sit before the bare "PyCon" pattern so the
// regional label takes precedence.
var confPatterns = []confPattern{
	{regexp.MustCompile(`pycon\s*kr\s*(\d{4})?`), "PyCon KR"},
	{regexp.MustCompile(`pycon\s*korea\s*(\d{4})?`), "PyCon KR"},
	{regexp.MustCompile(`pycon\s*(\d{4})?`), "PyCon"},
	{regexp.MustCompile(`djangocon\s*(\d{4})?`), "DjangoCon"},
	{regexp.MustCompile(`europython\s*(\d{4})?`), "EuroPython"},
	{regexp.MustCompile(`pycascades\s*(\d{4})?`), "PyCascades"},
	{regexp.MustCompile(`scipy\s*(\d{4})?`), "SciPy"},
	{regexp.MustCompile(`jupyter\s*con\s*(\d{4})?`), "JupyterCon"},
	{regexp.MustCompile(`python\s*conference\s*(\d{4})?`), "Python Conference"},
	{regexp.MustCompile(`파이콘\s*(\d{4})?`), "PyCon KR"},
}

// standalone 4-digit year, 2000–2099 only
var yearRE = regexp.MustCompile(`\b(20\d{2})\b`)

var (
	channelConfKeywords   = []string{"pycon", "파이콘", "python"}
	channelRegionKeywords = []string{"kr", "korea", "한국"}
)

// Classify infers (conference name, conference year) from video metadata.
// Empty name / zero year mean "not found". The fallback chain is ordered:
// named pattern (with its captured year) first, then a standalone year
// token anywhere in the text, then channel-name keywords as last resort.
func Classify(title, description, channelName string) (string, int) {
	text := strings.ToLower(title + " " + description + " " + channelName)

	var name string
	var year int

	for _, p := range confPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name = p.label
		if len(m) > 1 && m[1] != "" {
			year, _ = strconv.Atoi(m[1])
		}
		break
	}

	if year == 0 {
		if m := yearRE.FindStringSubmatch(text); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
	}

	if name == "" {
		name = classifyChannelName(channelName)
	}

	return name, year
}

// classifyChannelName inspects the channel name alone for conference
// keywords. Returns "" when nothing matches.
func classifyChannelName(channelName string) string {
	ch := strings.ToLower(channelName)
	if !containsAny(ch, channelConfKeywords) {
		return ""
	}
	if containsAny(ch, channelRegionKeywords) {
		return "PyCon KR"
	}
	return "PyCon"
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
