package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"spotapi/internal/logging"
	"spotapi/internal/model"
	"spotapi/internal/repository"
	"spotapi/internal/storage"
)

// Validation errors, checked in this order.
var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrImageRequired       = errors.New("image is required")
)

var (
	ErrNotFound    = errors.New("spot not found")
	ErrFetchFailed = errors.New("fetching spots failed")
	ErrNoImage     = errors.New("spot has no image")
)

var tracer = otel.Tracer("spotapi/internal/service")

// UploadError is returned by Create when staging or saving fails after validation passed.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload failed: " + e.Err.Error() }

func (e *UploadError) Unwrap() error { return e.Err }

// SpotInput is a submitted add-spot form.
type SpotInput struct {
	Name        string
	Description string
	Image       io.Reader
	ImageSize   int64
	ContentType string
}

// ValidateSpotInput checks name, then description, then image and reports the first gap.
// Whitespace-only text counts as empty.
func ValidateSpotInput(in SpotInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return ErrNameRequired
	case strings.TrimSpace(in.Description) == "":
		return ErrDescriptionRequired
	case in.Image == nil:
		return ErrImageRequired
	}
	return nil
}

// SpotListResult is the service-level DTO for the spot list.
type SpotListResult struct {
	Items []model.Spot `json:"data"`
	Total int          `json:"total"`
}

// SpotService defines the use cases of the tourist spot screen.
type SpotService interface {
	// List returns every spot. On a store failure it returns an empty result together with
	// an error wrapping ErrFetchFailed, so callers can tell "empty" from "failed".
	List(ctx context.Context) (*SpotListResult, error)

	// Get returns one spot by name.
	Get(ctx context.Context, name string) (*model.Spot, error)

	// Create validates the form, stages the image and writes the spot, replacing any spot with
	// the same name. If the write fails the staged image is removed again.
	Create(ctx context.Context, in SpotInput) (*model.Spot, error)

	// Delete removes the spot and then, best effort, its staged image.
	Delete(ctx context.Context, name string) error

	// OpenImage streams the staged image of a spot.
	OpenImage(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

type spotService struct {
	stager  *storage.Stager
	repo    repository.SpotRepository
	log     *logging.Logger
	metrics *Metrics
}

// NewSpotService constructs a new SpotService. log and metrics may be nil.
func NewSpotService(stager *storage.Stager, repo repository.SpotRepository, log *logging.Logger, metrics *Metrics) SpotService {
	if log == nil {
		log = logging.Nop()
	}
	return &spotService{stager: stager, repo: repo, log: log.With("service"), metrics: metrics}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *spotService) List(ctx context.Context) (res *SpotListResult, err error) {
	ctx, span := tracer.Start(ctx, "SpotService.List")
	defer func() { endSpan(span, err) }()
	defer func() { s.metrics.observe("list", err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("error fetching spots", err, nil)
		return &SpotListResult{Items: []model.Spot{}, Total: 0}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if items == nil {
		items = []model.Spot{}
	}
	span.SetAttributes(attribute.Int("spot.count", len(items)))
	return &SpotListResult{Items: items, Total: len(items)}, nil
}

func (s *spotService) Get(ctx context.Context, name string) (*model.Spot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	spot, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return spot, nil
}

func (s *spotService) Create(ctx context.Context, in SpotInput) (out *model.Spot, err error) {
	if err := ValidateSpotInput(in); err != nil {
		s.metrics.observe("create", err)
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "SpotService.Create", trace.WithAttributes(attribute.String("spot.name", in.Name)))
	defer func() { endSpan(span, err) }()
	defer func() { s.metrics.observe("create", err) }()

	info, err := s.stager.Stage(ctx, in.Image, in.ImageSize, in.ContentType)
	if err != nil {
		return nil, &UploadError{Err: fmt.Errorf("stage image: %w", err)}
	}
	s.metrics.staged(info.Size)

	// Remember the image being replaced so it does not linger after the overwrite.
	var previousRef string
	if prev, findErr := s.repo.FindByName(ctx, in.Name); findErr == nil && prev.ImageRef != nil {
		previousRef = *prev.ImageRef
	} else if findErr != nil && !errors.Is(findErr, repository.ErrNotFound) {
		s.log.Warn("lookup of existing spot failed", findErr, map[string]any{"name": in.Name})
	}

	spot := model.Spot{Name: in.Name, Description: in.Description}.WithImageRef(info.Ref)
	stored, err := s.repo.Upsert(ctx, spot)
	if err != nil {
		if delErr := s.stager.Remove(ctx, info.Ref); delErr != nil {
			s.log.Error("cleanup of staged image failed", delErr, map[string]any{"name": in.Name, "ref": info.Ref})
			return nil, &UploadError{Err: fmt.Errorf("save spot: %v; cleanup staged image failed: %v", err, delErr)}
		}
		return nil, &UploadError{Err: fmt.Errorf("save spot: %w", err)}
	}

	if previousRef != "" && previousRef != info.Ref {
		if delErr := s.stager.Remove(ctx, previousRef); delErr != nil {
			s.log.Warn("removing replaced image failed", delErr, map[string]any{"name": in.Name, "ref": previousRef})
		}
	}

	s.log.Info("spot saved", map[string]any{"name": stored.Name, "ref": info.Ref})
	return stored, nil
}

func (s *spotService) Delete(ctx context.Context, name string) (err error) {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	ctx, span := tracer.Start(ctx, "SpotService.Delete", trace.WithAttributes(attribute.String("spot.name", name)))
	defer func() { endSpan(span, err) }()
	defer func() { s.metrics.observe("delete", err) }()

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("error deleting spot", err, map[string]any{"name": name})
		return fmt.Errorf("delete spot: %w", err)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		s.log.Error("error deleting spot", err, map[string]any{"name": name})
		return fmt.Errorf("delete spot: %w", err)
	}

	if existing != nil && existing.ImageRef != nil {
		if delErr := s.stager.Remove(ctx, *existing.ImageRef); delErr != nil {
			s.log.Warn("removing image of deleted spot failed", delErr, map[string]any{"name": name, "ref": *existing.ImageRef})
		}
	}
	return nil
}

func (s *spotService) OpenImage(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	spot, err := s.Get(ctx, name)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if spot.ImageRef == nil || *spot.ImageRef == "" {
		return nil, storage.ObjectInfo{}, ErrNoImage
	}
	rc, info, err := s.stager.Open(ctx, *spot.ImageRef)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrForeignRef) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %w", ErrNoImage, err)
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}
