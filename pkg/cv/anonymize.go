package cv

import (
	"strings"
	"time"

	"github.com/pharmalink/cv/pkg/profile"
)

// AnonymizedCV is the anonymous projection of a StructuredCV. It carries only
// display-safe strings: raw company names, cities and school names do not
// exist on this shape, so a renderer holding it cannot leak them. The
// projection is derived on every read and never persisted.
type AnonymizedCV struct {
	DisplayName     string                 `json:"display_name"`
	Initials        string                 `json:"initials"`
	ProfessionTitle string                 `json:"profession_title"`
	SpecialtyTitle  string                 `json:"specialty_title"`
	Location        string                 `json:"location"`
	Summary         string                 `json:"summary"`
	Experiences     []AnonymizedExperience `json:"experiences"`
	Formations      []AnonymizedFormation  `json:"formations"`
	Skills          []string               `json:"skills"`
	Software        []string               `json:"software"`
	Certifications  []Certification        `json:"certifications"`
	Languages       []LanguageSkill        `json:"languages"`
	TotalExperience string                 `json:"total_experience"`
	Completeness    Completeness           `json:"completeness"`
}

type AnonymizedExperience struct {
	ID              string   `json:"id"`
	JobTitle        string   `json:"job_title"`
	CompanyDisplay  string   `json:"company_display"`
	LocationDisplay string   `json:"location_display"`
	Period          string   `json:"period"`
	Duration        string   `json:"duration"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
}

type AnonymizedFormation struct {
	ID             string `json:"id"`
	DiplomaDisplay string `json:"diploma_display"`
	DiplomaType    string `json:"diploma_type"`
	Region         string `json:"region"`
	Year           int    `json:"year"`
	Mention        string `json:"mention,omitempty"`
}

// Anonymize derives the anonymous projection of a CV. Masking decisions:
// nickname-or-first-name identity, region-level geography with a "France"
// fallback, company names replaced by type labels, school names dropped,
// free text through the PII scrub. Skills, software, certifications and
// languages pass through verbatim; they are not considered identifying.
// The input is never mutated.
func Anonymize(c *StructuredCV, p profile.Profile, now time.Time) AnonymizedCV {
	out := AnonymizedCV{
		DisplayName: DisplayName(p, true),
		Initials:    Initials(p, true),
		Location:    anonymousLocation(c, p),
	}
	if c == nil {
		out.Completeness = ComputeCompleteness(nil)
		out.TotalExperience = TotalExperienceLabel(0)
		return out
	}
	out.ProfessionTitle = c.ProfessionTitle
	out.SpecialtyTitle = c.SpecialtyTitle
	out.Summary = ScrubPII(c.Summary)
	out.Experiences = make([]AnonymizedExperience, 0, len(c.Experiences))
	for _, e := range c.Experiences {
		out.Experiences = append(out.Experiences, anonymizeExperience(e, now))
	}
	out.Formations = make([]AnonymizedFormation, 0, len(c.Formations))
	for _, f := range c.Formations {
		out.Formations = append(out.Formations, anonymizeFormation(f))
	}
	out.Skills = append([]string(nil), c.Skills...)
	out.Software = append([]string(nil), c.Software...)
	out.Certifications = append([]Certification(nil), c.Certifications...)
	out.Languages = append([]LanguageSkill(nil), c.Languages...)
	out.TotalExperience = TotalExperienceLabel(TotalExperienceMonths(c.Experiences, now))
	out.Completeness = ComputeCompleteness(c)
	return out
}

func anonymizeExperience(e Experience, now time.Time) AnonymizedExperience {
	return AnonymizedExperience{
		ID:              e.ID,
		JobTitle:        e.JobTitle,
		CompanyDisplay:  AnonymousCompanyLabel(e.CompanyType),
		LocationDisplay: e.Region,
		Period:          ExperiencePeriod(e, now),
		Duration:        ExperienceDuration(e, now),
		Description:     ScrubPII(e.Description),
		Skills:          append([]string(nil), e.Skills...),
	}
}

func anonymizeFormation(f Formation) AnonymizedFormation {
	display := strings.TrimSpace(f.DiplomaName)
	if display == "" {
		display = DiplomaTypeLabel(f.DiplomaType)
	}
	return AnonymizedFormation{
		ID:             f.ID,
		DiplomaDisplay: display,
		DiplomaType:    f.DiplomaType,
		Region:         f.SchoolRegion,
		Year:           f.Year,
		Mention:        f.Mention,
	}
}

// anonymousLocation is the region-level fallback chain: CV region, then
// profile region, then the country.
func anonymousLocation(c *StructuredCV, p profile.Profile) string {
	if c != nil && strings.TrimSpace(c.CurrentRegion) != "" {
		return strings.TrimSpace(c.CurrentRegion)
	}
	if strings.TrimSpace(p.CurrentRegion) != "" {
		return strings.TrimSpace(p.CurrentRegion)
	}
	return "France"
}
