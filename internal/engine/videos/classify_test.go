package videos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		channelName string
		wantName    string
		wantYear    int
	}{
		{
			name:     "pycon kr with trailing year token",
			title:    "PyCon KR talk, recorded in 2019",
			wantName: "PyCon KR",
			wantYear: 2019,
		},
		{
			name:     "pycon kr with inline year",
			title:    "PyCon KR 2023 - Keynote",
			wantName: "PyCon KR",
			wantYear: 2023,
		},
		{
			name:     "pycon korea maps to regional label",
			title:    "PyCon Korea 2018 lightning talks",
			wantName: "PyCon KR",
			wantYear: 2018,
		},
		{
			name:     "bare pycon without region",
			title:    "PyCon US 2023 keynote",
			wantName: "PyCon",
			wantYear: 2023,
		},
		{
			name:        "conference in channel name only",
			title:       "Intro to asyncio",
			channelName: "EuroPython",
			wantName:    "EuroPython",
			wantYear:    0,
		},
		{
			name:     "djangocon",
			title:    "DjangoCon 2022: ORM internals",
			wantName: "DjangoCon",
			wantYear: 2022,
		},
		{
			name:        "korean pycon name",
			title:       "파이콘 2020 발표",
			wantName:    "PyCon KR",
			wantYear:    2020,
		},
		{
			name:        "year from description when title has none",
			title:       "SciPy tutorial",
			description: "Recorded at the 2021 conference",
			wantName:    "SciPy",
			wantYear:    2021,
		},
		{
			name:        "channel keyword fallback with region",
			title:       "Flask deep dive",
			channelName: "Python Korea",
			wantName:    "PyCon KR",
			wantYear:    0,
		},
		{
			name:        "channel keyword fallback without region",
			title:       "How generators work",
			channelName: "Python Tutorials",
			wantName:    "PyCon",
			wantYear:    0,
		},
		{
			name:     "case insensitive",
			title:    "PYCON 2020",
			wantName: "PyCon",
			wantYear: 2020,
		},
		{
			name:        "no match at all",
			title:       "Cat compilation",
			channelName: "Funny Cats",
			wantName:    "",
			wantYear:    0,
		},
		{
			name:     "year outside 20xx is ignored",
			title:    "EuroPython retrospective 1999",
			wantName: "EuroPython",
			wantYear: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, year := Classify(tt.title, tt.description, tt.channelName)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func TestClassifyRegionalBeforeGeneric(t *testing.T) {
	// A title matching both the regional and the generic pattern must
	// resolve to the regional label.
	name, _ := Classify("PyCon KR and PyCon US compared", "", "")
	assert.Equal(t, "PyCon KR", name)
}

func TestClassifyDeterministic(t *testing.T) {
	n1, y1 := Classify("PyCon KR 2019", "desc", "chan")
	n2, y2 := Classify("PyCon KR 2019", "desc", "chan")
	assert.Equal(t, n1, n2)
	assert.Equal(t, y1, y2)
}
