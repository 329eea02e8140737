// Package contact implements the contact-form submission pipeline.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nursejordan/i-notarize-online.com/internal/api"
	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

// ConfirmationMessage is returned with every accepted submission.
const ConfirmationMessage = "Thank you for your request! We will contact you soon to confirm your appointment."

// maxReferenceProbes bounds how many consecutive seconds are tried when the
// reference for the creation second is already allocated.
const maxReferenceProbes = 10

var tracer = otel.Tracer("github.com/nursejordan/i-notarize-online.com/internal/contact")

// Service validates and stores contact submissions.
type Service struct {
	store store.SubmissionStore
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// New returns a Service writing to st.
func New(st store.SubmissionStore) *Service {
	return &Service{store: st, Now: time.Now}
}

// EstimatedResponse is the promised turnaround for urgency.
func EstimatedResponse(u models.Urgency) string {
	if u == models.UrgencyRush {
		return "within 1 hour"
	}
	return "within 2 hours"
}

// Reference formats the human-facing code for a submission created at t.
func Reference(t time.Time) string {
	return fmt.Sprintf("REQ-%d", t.Unix())
}

// Submit validates in, stores a new submission and returns its receipt.
// Invalid input yields an *apperrors.ValidationError and nothing is written.
func (s *Service) Submit(ctx context.Context, in models.ContactInput) (api.SubmissionReceipt, error) {
	ctx, span := tracer.Start(ctx, "contact.Submit")
	defer span.End()

	if err := validate.ContactInput(&in); err != nil {
		span.SetAttributes(attribute.Bool("contact.invalid", true))
		return api.SubmissionReceipt{}, err
	}

	now := s.Now().UTC()
	sub := models.ContactSubmission{
		ID:            ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		ServiceType:   models.ServiceType(in.ServiceType),
		DocumentType:  in.DocumentType,
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		Urgency:       models.Urgency(*in.Urgency),
		Status:        models.StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	span.SetAttributes(attribute.String("contact.id", sub.ID), attribute.String("contact.urgency", *in.Urgency))

	if err := s.create(ctx, &sub); err != nil {
		fail(span, err)
		return api.SubmissionReceipt{}, err
	}
	span.SetAttributes(attribute.String("contact.reference", sub.Reference))

	return api.SubmissionReceipt{
		Success:           true,
		Message:           ConfirmationMessage,
		Reference:         sub.Reference,
		EstimatedResponse: EstimatedResponse(sub.Urgency),
	}, nil
}

// create claims the reference of the creation second, moving to the next
// second while it is taken.
func (s *Service) create(ctx context.Context, sub *models.ContactSubmission) error {
	for i := 0; i < maxReferenceProbes; i++ {
		sub.Reference = Reference(sub.CreatedAt.Add(time.Duration(i) * time.Second))
		err := s.store.CreateSubmission(ctx, *sub)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrReferenceTaken) {
			return apperrors.Persistence("create submission", err)
		}
	}
	return apperrors.Persistence("create submission",
		fmt.Errorf("no free reference within %d probes from %s", maxReferenceProbes, Reference(sub.CreatedAt)))
}

// List returns the most recent submissions, newest first.
func (s *Service) List(ctx context.Context) ([]models.ContactSubmission, error) {
	ctx, span := tracer.Start(ctx, "contact.List")
	defer span.End()

	subs, err := s.store.ListSubmissions(ctx, store.MaxSubmissions)
	if err != nil {
		err = apperrors.Persistence("list submissions", err)
		fail(span, err)
		return nil, err
	}
	return subs, nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
