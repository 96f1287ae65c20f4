package cv

import (
	"math"
	"strings"
)

// Completeness is a weighted checklist over the seven canonical CV sections.
// It is a meta-statistic about the document, computed from raw data and shown
// in both anonymous and full views.
type Completeness struct {
	Percent int      `json:"percent"`
	Missing []string `json:"missing"`
}

type checklistItem struct {
	label  string
	weight int
	filled func(c *StructuredCV) bool
}

// Weights sum to 100. Array sections count when they meet a minimum item
// count (1, except skills which needs 3); string sections when non-empty
// after trimming.
var checklist = []checklistItem{
	{"Résumé", 10, func(c *StructuredCV) bool { return strings.TrimSpace(c.Summary) != "" }},
	{"Expériences", 30, func(c *StructuredCV) bool { return len(c.Experiences) >= 1 }},
	{"Formations", 20, func(c *StructuredCV) bool { return len(c.Formations) >= 1 }},
	{"Compétences", 20, func(c *StructuredCV) bool { return len(c.Skills) >= 3 }},
	{"Logiciels", 10, func(c *StructuredCV) bool { return len(c.Software) >= 1 }},
	{"Certifications", 5, func(c *StructuredCV) bool { return len(c.Certifications) >= 1 }},
	{"Langues", 5, func(c *StructuredCV) bool { return len(c.Languages) >= 1 }},
}

// ComputeCompleteness scores a CV against the checklist and lists the labels
// of sections still missing. A nil CV scores zero with everything missing.
func ComputeCompleteness(c *StructuredCV) Completeness {
	earned, total := 0, 0
	missing := []string{}
	for _, item := range checklist {
		total += item.weight
		if c != nil && item.filled(c) {
			earned += item.weight
		} else {
			missing = append(missing, item.label)
		}
	}
	percent := int(math.Round(100 * float64(earned) / float64(total)))
	return Completeness{Percent: percent, Missing: missing}
}
