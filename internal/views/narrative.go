package views

// Span is a run of narrative text, optionally emphasised.
type Span struct {
	Text   string `json:"text"`
	Strong bool   `json:"strong,omitempty"`
}

// Paragraph is one bullet of narrative.
type Paragraph []Span

// Narrative is a block of fixed commentary with an optional info box.
type Narrative struct {
	Title string      `json:"title"`
	Items []Paragraph `json:"items"`
	Info  string      `json:"info,omitempty"`
}

// String flattens a paragraph to plain text.
func (p Paragraph) String() string {
	var s string
	for _, span := range p {
		s += span.Text
	}
	return s
}

func strong(s string) Span { return Span{Text: s, Strong: true} }
func plain(s string) Span  { return Span{Text: s} }

// Page copy.
const (
	PageTitle = "Population Growth and Mortality Throughout History"
	PageIntro = "This dashboard shows how the world population has evolved over the centuries, " +
		"based on historical data and global estimates. It also looks at the mortality rate " +
		"and at the events that most affected human growth."

	GlobalTabLabel  = "Global View"
	CompareTabLabel = "Compare Countries"

	WorldTableTitle     = "Historical World Population Data"
	WorldChartTitle     = "World Population Growth (1960 - Today)"
	MortalityChartTitle = "Global Mortality Rate (historical estimate)"
	ComparisonTitle     = "Population Growth Comparison Between Countries"
	ComparisonChartName = "Chart Comparison"
)

// globalNarrative is the fixed historical context on the global tab.
func globalNarrative() Narrative {
	return Narrative{
		Title: "Historical Context",
		Items: []Paragraph{
			{strong("Before 1800:"), plain(" high infant mortality and infectious diseases limited growth.")},
			{strong("1850–1950:"), plain(" the Industrial Revolution and medical advances raised life expectancy.")},
			{strong("After 1950:"), plain(" modern medicine and globalization drove growth.")},
			{strong("Today:"), plain(" challenges with sustainability and population ageing.")},
		},
		Info: "Human population growth reflects our capacity to adapt, " +
			"but it brings challenges of sustainability and limited resources.",
	}
}

// comparisonNarrative interpolates the selected countries into fixed sentences.
func comparisonNarrative(a, b string) Narrative {
	return Narrative{
		Title: "Analysis and Context",
		Items: []Paragraph{
			{strong(a), plain(" and "), strong(b), plain(" show distinct population trajectories, shaped by historical, economic and social factors.")},
			{plain("In countries such as "), strong(b), plain(", birth policies and industrialization accelerated growth in the 20th century.")},
			{plain("In "), strong(a), plain(", growth was steadier, tied to gradual improvements in health and the economy.")},
			{plain("The chart makes it possible to spot "), strong("peaks, drops or stagnation"), plain(" associated with historical events.")},
		},
	}
}
