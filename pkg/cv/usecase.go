package cv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pharmalink/cv/pkg/profile"
)

// Clock supplies "now" to every duration computation so renders are
// reproducible under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the production clock.
func SystemClock() Clock { return systemClock{} }

// IDGenerator mints IDs for records and list items. IDs are opaque to
// business logic and never reused.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// UUIDGenerator is the production ID source.
func UUIDGenerator() IDGenerator { return uuidGenerator{} }

// UseCase covers the CV lifecycle: builder CRUD plus the two read-side
// projections (preview and completeness).
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, variant Variant, title string, content StructuredCV) (Record, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, title string, content StructuredCV) (Record, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Preview(ctx context.Context, ownerID, id uuid.UUID, mode Mode) (CVView, error)
	Completeness(ctx context.Context, ownerID, id uuid.UUID) (Completeness, error)
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	repo     Repository
	profiles profile.Repository
	clock    Clock
	ids      IDGenerator
	log      *logrus.Entry
}

// NewService wires the default implementation. Pass SystemClock and
// UUIDGenerator in production; tests substitute fixed ones.
func NewService(repo Repository, profiles profile.Repository, clock Clock, ids IDGenerator, log *logrus.Logger) UseCase {
	if clock == nil {
		clock = SystemClock()
	}
	if ids == nil {
		ids = UUIDGenerator()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		clock:    clock,
		ids:      ids,
		log:      log.WithField("component", "cv"),
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, variant Variant, title string, content StructuredCV) (Record, error) {
	if variant == "" {
		variant = VariantGeneral
	}
	if variant != VariantGeneral && variant != VariantAnimator {
		return Record{}, ErrValidation(fmt.Sprintf("unknown cv variant %q", variant))
	}
	s.normalize(&content)
	if err := s.validate(content); err != nil {
		return Record{}, err
	}
	now := s.clock.Now()
	rec := Record{
		ID:        uuid.MustParse(s.newRecordID()),
		OwnerID:   ownerID,
		Variant:   variant,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	s.log.WithFields(logrus.Fields{"cvId": rec.ID, "ownerId": ownerID, "variant": variant}).Info("cv created")
	return rec, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, title string, content StructuredCV) (Record, error) {
	rec, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return Record{}, err
	}
	s.normalize(&content)
	if err := s.validate(content); err != nil {
		return Record{}, err
	}
	if t := strings.TrimSpace(title); t != "" {
		rec.Title = t
	}
	rec.Content = content
	rec.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	s.log.WithFields(logrus.Fields{"cvId": rec.ID, "ownerId": ownerID}).Info("cv updated")
	return rec, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"cvId": id, "ownerId": ownerID}).Info("cv deleted")
	return nil
}

// Preview builds the display view for a CV. Animator CVs ignore the mode and
// follow their own visibility flags.
func (s *service) Preview(ctx context.Context, ownerID, id uuid.UUID, mode Mode) (CVView, error) {
	rec, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return CVView{}, err
	}
	p := s.ownerProfile(ctx, ownerID)
	now := s.clock.Now()
	if rec.Variant == VariantAnimator {
		return AnimatorView(&rec.Content, p, now), nil
	}
	if mode == ModeFull {
		return FullView(&rec.Content, p, now), nil
	}
	return AnonymousView(&rec.Content, p, now), nil
}

func (s *service) Completeness(ctx context.Context, ownerID, id uuid.UUID) (Completeness, error) {
	rec, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return Completeness{}, err
	}
	return ComputeCompleteness(&rec.Content), nil
}

// ownerProfile tolerates a missing profile: projections degrade to the
// placeholder identity instead of failing the render.
func (s *service) ownerProfile(ctx context.Context, ownerID uuid.UUID) profile.Profile {
	p, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return profile.Profile{UserID: ownerID}
	}
	return p
}

// normalize enforces document invariants before a write: ongoing experiences
// carry no end date, and every list item gets an ID if the editor sent none.
func (s *service) normalize(c *StructuredCV) {
	for i := range c.Experiences {
		if c.Experiences[i].IsCurrent {
			c.Experiences[i].EndDate = ""
		}
		if c.Experiences[i].ID == "" {
			c.Experiences[i].ID = s.ids.NewID()
		}
	}
	for i := range c.Formations {
		if c.Formations[i].ID == "" {
			c.Formations[i].ID = s.ids.NewID()
		}
	}
	for i := range c.Certifications {
		if c.Certifications[i].ID == "" {
			c.Certifications[i].ID = s.ids.NewID()
		}
	}
	if c.Animator != nil {
		for i := range c.Animator.KeyMissions {
			if c.Animator.KeyMissions[i].ID == "" {
				c.Animator.KeyMissions[i].ID = s.ids.NewID()
			}
		}
	}
}

func (s *service) validate(content StructuredCV) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal cv content: %w", err)
	}
	if err := ValidateContent(raw); err != nil {
		return ErrValidation(err.Error())
	}
	return nil
}

// newRecordID keeps record IDs UUID-shaped even under a custom generator.
func (s *service) newRecordID() string {
	id := s.ids.NewID()
	if _, err := uuid.Parse(id); err != nil {
		return uuid.NewString()
	}
	return id
}
