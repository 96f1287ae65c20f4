package cv

import (
	"strconv"
	"strings"
	"time"

	"github.com/pharmalink/cv/pkg/profile"
)

// Mode selects which projection of a CV a view is built from.
type Mode string

const (
	ModeAnonymous Mode = "anonymous"
	ModeFull      Mode = "full"
)

// Field identifies an independently toggleable part of a view.
type Field string

const (
	FieldPhoto   Field = "photo"
	FieldRating  Field = "rating"
	FieldContact Field = "contact"
)

// VisibilityPolicy answers whether a field may appear in a rendered view.
// The general CV's binary mode and the animator CV's per-section booleans
// both implement it, so a single view builder serves both variants.
type VisibilityPolicy interface {
	Visible(f Field) bool
}

// ModePolicy is the general CV policy: full mode shows everything, anonymous
// mode keeps only the rating (a platform aggregate, not identifying).
type ModePolicy struct {
	Mode Mode
}

func (p ModePolicy) Visible(f Field) bool {
	if p.Mode == ModeFull {
		return true
	}
	return f == FieldRating
}

// FlagPolicy is the animator CV policy: each section follows its own boolean
// stored on the document.
type FlagPolicy struct {
	ShowPhoto   bool
	ShowRating  bool
	ShowContact bool
}

func (p FlagPolicy) Visible(f Field) bool {
	switch f {
	case FieldPhoto:
		return p.ShowPhoto
	case FieldRating:
		return p.ShowRating
	case FieldContact:
		return p.ShowContact
	}
	return false
}

// CVView is the display-ready model shared by the interactive preview and the
// document export. It contains only strings meant to be shown; whichever
// projection produced it already made every masking decision.
type CVView struct {
	Empty           bool         `json:"empty"`
	Mode            Mode         `json:"mode"`
	Variant         Variant      `json:"variant"`
	DisplayName     string       `json:"display_name"`
	Initials        string       `json:"initials"`
	Title           string       `json:"title"`
	Location        string       `json:"location"`
	PhotoURL        string       `json:"photo_url,omitempty"`
	Rating          *float64     `json:"rating,omitempty"`
	Contact         *ContactInfo `json:"contact,omitempty"`
	Summary         string       `json:"summary,omitempty"`
	TotalExperience string       `json:"total_experience"`
	Completeness    Completeness `json:"completeness"`
	Sections        []Section    `json:"sections"`
}

type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Section is one titled block of the view. List sections carry Rows, flat
// sections (skills, software) carry Tags. Rows keep their stored order.
type Section struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Rows  []Row    `json:"rows,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

type Row struct {
	Heading    string   `json:"heading"`
	Subheading string   `json:"subheading,omitempty"`
	Meta       string   `json:"meta,omitempty"`
	Period     string   `json:"period,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Body       string   `json:"body,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

func emptyView(mode Mode) CVView {
	return CVView{
		Empty:           true,
		Mode:            mode,
		Variant:         VariantGeneral,
		DisplayName:     PlaceholderName,
		TotalExperience: TotalExperienceLabel(0),
		Completeness:    ComputeCompleteness(nil),
		Sections:        []Section{},
	}
}

// AnonymousView builds the anonymous preview. All content comes from the
// Anonymize projection; this function adds no masking logic of its own.
func AnonymousView(c *StructuredCV, p profile.Profile, now time.Time) CVView {
	if c == nil {
		return emptyView(ModeAnonymous)
	}
	policy := ModePolicy{Mode: ModeAnonymous}
	a := Anonymize(c, p, now)
	view := CVView{
		Mode:            ModeAnonymous,
		Variant:         variantOf(c),
		DisplayName:     a.DisplayName,
		Initials:        a.Initials,
		Title:           headline(c),
		Location:        a.Location,
		Summary:         a.Summary,
		TotalExperience: a.TotalExperience,
		Completeness:    a.Completeness,
		Sections:        []Section{},
	}
	if policy.Visible(FieldRating) && p.Rating > 0 {
		rating := p.Rating
		view.Rating = &rating
	}
	if len(a.Experiences) > 0 {
		rows := make([]Row, 0, len(a.Experiences))
		for _, e := range a.Experiences {
			rows = append(rows, Row{
				Heading:    e.JobTitle,
				Subheading: e.CompanyDisplay,
				Meta:       e.LocationDisplay,
				Period:     e.Period,
				Duration:   e.Duration,
				Body:       e.Description,
				Tags:       e.Skills,
			})
		}
		view.Sections = append(view.Sections, Section{ID: "experiences", Title: "Expériences", Rows: rows})
	}
	if len(a.Formations) > 0 {
		rows := make([]Row, 0, len(a.Formations))
		for _, f := range a.Formations {
			rows = append(rows, Row{
				Heading:    f.DiplomaDisplay,
				Subheading: DiplomaTypeLabel(f.DiplomaType),
				Meta:       f.Region,
				Period:     formationYear(f.Year),
				Body:       mentionLine(f.Mention),
			})
		}
		view.Sections = append(view.Sections, Section{ID: "formations", Title: "Formations", Rows: rows})
	}
	appendCommonSections(&view, a.Skills, a.Software, a.Certifications, a.Languages)
	return view
}

// FullView builds the unrestricted preview: raw passthrough of stored fields
// plus the identity and location overrides. It deliberately does not route
// through the anonymizer.
func FullView(c *StructuredCV, p profile.Profile, now time.Time) CVView {
	if c == nil {
		return emptyView(ModeFull)
	}
	policy := ModePolicy{Mode: ModeFull}
	view := CVView{
		Mode:            ModeFull,
		Variant:         variantOf(c),
		DisplayName:     DisplayName(p, false),
		Initials:        Initials(p, false),
		Title:           headline(c),
		Location:        fullLocation(c.CurrentCity, c.CurrentRegion, p),
		Summary:         c.Summary,
		TotalExperience: TotalExperienceLabel(TotalExperienceMonths(c.Experiences, now)),
		Completeness:    ComputeCompleteness(c),
		Sections:        []Section{},
	}
	if policy.Visible(FieldPhoto) && p.PhotoURL != "" {
		view.PhotoURL = p.PhotoURL
	}
	if policy.Visible(FieldRating) && p.Rating > 0 {
		rating := p.Rating
		view.Rating = &rating
	}
	if policy.Visible(FieldContact) {
		view.Contact = contactInfo(c, p)
	}
	if len(c.Experiences) > 0 {
		rows := make([]Row, 0, len(c.Experiences))
		for _, e := range c.Experiences {
			rows = append(rows, Row{
				Heading:    e.JobTitle,
				Subheading: e.CompanyName,
				Meta:       cityRegion(e.City, e.Region),
				Period:     ExperiencePeriod(e, now),
				Duration:   ExperienceDuration(e, now),
				Body:       e.Description,
				Tags:       e.Skills,
			})
		}
		view.Sections = append(view.Sections, Section{ID: "experiences", Title: "Expériences", Rows: rows})
	}
	if len(c.Formations) > 0 {
		rows := make([]Row, 0, len(c.Formations))
		for _, f := range c.Formations {
			heading := strings.TrimSpace(f.DiplomaName)
			if heading == "" {
				heading = DiplomaTypeLabel(f.DiplomaType)
			}
			rows = append(rows, Row{
				Heading:    heading,
				Subheading: f.SchoolName,
				Meta:       cityRegion(f.SchoolCity, f.SchoolRegion),
				Period:     formationYear(f.Year),
				Body:       mentionLine(f.Mention),
			})
		}
		view.Sections = append(view.Sections, Section{ID: "formations", Title: "Formations", Rows: rows})
	}
	appendCommonSections(&view, c.Skills, c.Software, c.Certifications, c.Languages)
	return view
}

// AnimatorView builds the animator-specialty card. There is no binary mode:
// photo, rating and contact each follow their own flag on the document.
func AnimatorView(c *StructuredCV, p profile.Profile, now time.Time) CVView {
	if c == nil {
		return emptyView(ModeFull)
	}
	view := FullView(c, p, now)
	view.Variant = VariantAnimator
	details := c.Animator
	if details == nil {
		details = &AnimatorDetails{}
	}
	policy := FlagPolicy{
		ShowPhoto:   details.ShowPhoto,
		ShowRating:  details.ShowRating,
		ShowContact: details.ShowContact,
	}
	if !policy.Visible(FieldPhoto) {
		view.PhotoURL = ""
	}
	if !policy.Visible(FieldRating) {
		view.Rating = nil
	}
	if !policy.Visible(FieldContact) {
		view.Contact = nil
	}
	if len(details.BrandsExperience) > 0 {
		view.Sections = append(view.Sections, Section{ID: "brands", Title: "Marques animées", Tags: details.BrandsExperience})
	}
	if len(details.KeyMissions) > 0 {
		rows := make([]Row, 0, len(details.KeyMissions))
		for _, m := range details.KeyMissions {
			rows = append(rows, Row{Heading: MissionTypeLabel(m.MissionType), Body: m.Description})
		}
		view.Sections = append(view.Sections, Section{ID: "key_missions", Title: "Missions clés", Rows: rows})
	}
	if len(details.BrandCertifications) > 0 {
		view.Sections = append(view.Sections, Section{ID: "brand_certifications", Title: "Certifications marques", Tags: details.BrandCertifications})
	}
	if len(details.AnimationSpecialties) > 0 {
		view.Sections = append(view.Sections, Section{ID: "animation_specialties", Title: "Spécialités d'animation", Tags: details.AnimationSpecialties})
	}
	if len(details.MobilityZones) > 0 {
		mobility := Section{ID: "mobility", Title: "Zones de mobilité", Tags: details.MobilityZones}
		if details.HasVehicle {
			mobility.Rows = []Row{{Heading: "Véhicule personnel"}}
		}
		view.Sections = append(view.Sections, mobility)
	}
	if details.DailyRateMin > 0 || details.DailyRateMax > 0 {
		view.Sections = append(view.Sections, Section{
			ID:    "daily_rate",
			Title: "Tarif journalier",
			Rows:  []Row{{Heading: dailyRateLine(details.DailyRateMin, details.DailyRateMax)}},
		})
	}
	return view
}

func appendCommonSections(view *CVView, skills, software []string, certifications []Certification, languages []LanguageSkill) {
	if len(skills) > 0 {
		view.Sections = append(view.Sections, Section{ID: "skills", Title: "Compétences", Tags: skills})
	}
	if len(software) > 0 {
		view.Sections = append(view.Sections, Section{ID: "software", Title: "Logiciels", Tags: software})
	}
	if len(certifications) > 0 {
		rows := make([]Row, 0, len(certifications))
		for _, cert := range certifications {
			rows = append(rows, Row{Heading: cert.Name, Period: formationYear(cert.Year)})
		}
		view.Sections = append(view.Sections, Section{ID: "certifications", Title: "Certifications", Rows: rows})
	}
	if len(languages) > 0 {
		rows := make([]Row, 0, len(languages))
		for _, lang := range languages {
			rows = append(rows, Row{Heading: lang.Language, Meta: LanguageLevelLabel(lang.Level)})
		}
		view.Sections = append(view.Sections, Section{ID: "languages", Title: "Langues", Rows: rows})
	}
}

func variantOf(c *StructuredCV) Variant {
	if c != nil && c.Animator != nil {
		return VariantAnimator
	}
	return VariantGeneral
}

func headline(c *StructuredCV) string {
	title := strings.TrimSpace(c.ProfessionTitle)
	specialty := strings.TrimSpace(c.SpecialtyTitle)
	switch {
	case title != "" && specialty != "":
		return title + " · " + specialty
	case title != "":
		return title
	default:
		return specialty
	}
}

// fullLocation prefers the CV-level city/region and falls back to the
// profile, then the country.
func fullLocation(city, region string, p profile.Profile) string {
	if loc := cityRegion(city, region); loc != "" {
		return loc
	}
	if loc := cityRegion(p.CurrentCity, p.CurrentRegion); loc != "" {
		return loc
	}
	return "France"
}

func cityRegion(city, region string) string {
	city = strings.TrimSpace(city)
	region = strings.TrimSpace(region)
	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	default:
		return region
	}
}

func contactInfo(c *StructuredCV, p profile.Profile) *ContactInfo {
	email := strings.TrimSpace(c.ContactEmail)
	phone := strings.TrimSpace(c.ContactPhone)
	if phone == "" {
		phone = strings.TrimSpace(p.Phone)
	}
	if email == "" && phone == "" {
		return nil
	}
	return &ContactInfo{Email: email, Phone: phone}
}

func formationYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func mentionLine(mention string) string {
	if strings.TrimSpace(mention) == "" {
		return ""
	}
	return "Mention " + strings.ToLower(MentionLabel(mention))
}

func dailyRateLine(min, max int) string {
	switch {
	case min > 0 && max > 0:
		return strconv.Itoa(min) + " - " + strconv.Itoa(max) + " € / jour"
	case min > 0:
		return "À partir de " + strconv.Itoa(min) + " € / jour"
	default:
		return "Jusqu'à " + strconv.Itoa(max) + " € / jour"
	}
}
