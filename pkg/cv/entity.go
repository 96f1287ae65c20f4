package cv

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Variant distinguishes the two CV models the platform supports.
type Variant string

const (
	VariantGeneral  Variant = "general"
	VariantAnimator Variant = "animator"
)

// StructuredCV is the canonical editable document. It is persisted as an
// opaque JSON blob and read back verbatim for every render; anonymized
// projections are derived on each read, never stored.
type StructuredCV struct {
	Summary         string          `json:"summary"`
	ProfessionTitle string          `json:"profession_title"`
	SpecialtyTitle  string          `json:"specialty_title"`
	CurrentCity     string          `json:"current_city"`
	CurrentRegion   string          `json:"current_region"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone"`
	Experiences     []Experience    `json:"experiences"`
	Formations      []Formation     `json:"formations"`
	Skills          []string        `json:"skills"`
	Software        []string        `json:"software"`
	Certifications  []Certification `json:"certifications"`
	Languages       []LanguageSkill `json:"languages"`
	// Animator is set only on the animator-specialty variant.
	Animator *AnimatorDetails `json:"animator,omitempty"`
}

// Experience is one position in the work history. Dates are YYYY-MM strings;
// day-of-month is not modeled. IsCurrent means "ongoing through render time",
// any stored end date is ignored.
type Experience struct {
	ID          string   `json:"id"`
	JobTitle    string   `json:"job_title"`
	CompanyName string   `json:"company_name"`
	CompanyType string   `json:"company_type"`
	CompanySize string   `json:"company_size"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	IsCurrent   bool     `json:"is_current"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type Formation struct {
	ID           string `json:"id"`
	DiplomaType  string `json:"diploma_type"`
	DiplomaName  string `json:"diploma_name"`
	SchoolName   string `json:"school_name"`
	SchoolCity   string `json:"school_city"`
	SchoolRegion string `json:"school_region"`
	Year         int    `json:"year"`
	Mention      string `json:"mention,omitempty"`
}

type Certification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

type LanguageSkill struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// AnimatorDetails extends the document for the animator-specialty variant.
// Visibility is per-section booleans here, not the binary anonymous/full mode.
type AnimatorDetails struct {
	BrandsExperience     []string     `json:"brands_experience"`
	KeyMissions          []KeyMission `json:"key_missions"`
	BrandCertifications  []string     `json:"brand_certifications"`
	AnimationSpecialties []string     `json:"animation_specialties"`
	DailyRateMin         int          `json:"daily_rate_min"`
	DailyRateMax         int          `json:"daily_rate_max"`
	MobilityZones        []string     `json:"mobility_zones"`
	HasVehicle           bool         `json:"has_vehicle"`
	ShowPhoto            bool         `json:"show_photo"`
	ShowRating           bool         `json:"show_rating"`
	ShowContact          bool         `json:"show_contact"`
}

type KeyMission struct {
	ID          string `json:"id"`
	MissionType string `json:"mission_type"`
	Description string `json:"description"`
}

// Record is the persistence envelope around a StructuredCV.
type Record struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   uuid.UUID    `json:"ownerId"`
	Variant   Variant      `json:"variant"`
	Title     string       `json:"title"`
	Content   StructuredCV `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

var ErrNotFound = errors.New("cv not found")

// Repository is the persistence port for CV records. All reads and writes are
// owner-scoped; there is no cross-owner access on this surface.
type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
