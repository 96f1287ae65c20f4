package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullCV() *StructuredCV {
	return &StructuredCV{
		Summary: "Préparatrice expérimentée en officine.",
		Experiences: []Experience{
			{JobTitle: "Préparatrice", StartDate: "2020-01", EndDate: "2022-01"},
		},
		Formations: []Formation{
			{DiplomaType: "bp_preparateur", Year: 2019},
		},
		Skills:   []string{"Délivrance", "Conseil", "Gestion de stock"},
		Software: []string{"LGPI"},
		Certifications: []Certification{
			{Name: "Vaccination", Year: 2023},
		},
		Languages: []LanguageSkill{
			{Language: "Anglais", Level: "courant"},
		},
	}
}

func TestComputeCompletenessFull(t *testing.T) {
	got := ComputeCompleteness(fullCV())
	assert.Equal(t, 100, got.Percent)
	assert.Empty(t, got.Missing)
}

func TestComputeCompletenessEmpty(t *testing.T) {
	got := ComputeCompleteness(&StructuredCV{})
	assert.Equal(t, 0, got.Percent)
	assert.Equal(t, []string{
		"Résumé", "Expériences", "Formations", "Compétences",
		"Logiciels", "Certifications", "Langues",
	}, got.Missing)
}

func TestComputeCompletenessNil(t *testing.T) {
	got := ComputeCompleteness(nil)
	assert.Equal(t, 0, got.Percent)
	assert.Len(t, got.Missing, 7)
	assert.NotNil(t, got.Missing)
}

func TestComputeCompletenessPartial(t *testing.T) {
	c := &StructuredCV{
		Summary:     "Quelques lignes.",
		Experiences: []Experience{{JobTitle: "Pharmacien adjoint"}},
	}
	got := ComputeCompleteness(c)
	assert.Equal(t, 40, got.Percent)
	assert.Contains(t, got.Missing, "Formations")
	assert.NotContains(t, got.Missing, "Résumé")
	assert.NotContains(t, got.Missing, "Expériences")
}

func TestComputeCompletenessSkillsMinimum(t *testing.T) {
	c := &StructuredCV{Skills: []string{"Conseil", "Délivrance"}}
	got := ComputeCompleteness(c)
	assert.Contains(t, got.Missing, "Compétences", "two skills are below the minimum of three")

	c.Skills = append(c.Skills, "Gestion de stock")
	got = ComputeCompleteness(c)
	assert.NotContains(t, got.Missing, "Compétences")
	assert.Equal(t, 20, got.Percent)
}

func TestComputeCompletenessBlankSummary(t *testing.T) {
	c := &StructuredCV{Summary: "   \n "}
	got := ComputeCompleteness(c)
	assert.Contains(t, got.Missing, "Résumé")
}

// Adding content never lowers the score.
func TestComputeCompletenessMonotonic(t *testing.T) {
	c := &StructuredCV{}
	prev := ComputeCompleteness(c).Percent

	steps := []func(){
		func() { c.Summary = "Résumé." },
		func() { c.Experiences = []Experience{{JobTitle: "Préparatrice"}} },
		func() { c.Formations = []Formation{{DiplomaType: "autre"}} },
		func() { c.Skills = []string{"a", "b", "c"} },
		func() { c.Software = []string{"LGPI"} },
		func() { c.Certifications = []Certification{{Name: "x"}} },
		func() { c.Languages = []LanguageSkill{{Language: "Anglais"}} },
	}
	for i, step := range steps {
		step()
		got := ComputeCompleteness(c).Percent
		assert.GreaterOrEqual(t, got, prev, "step %d", i)
		prev = got
	}
	assert.Equal(t, 100, prev)
}
