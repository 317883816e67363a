package intake

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/validator"
)

// ErrRejected is returned in an Outcome when the draft is not submittable.
var ErrRejected = errors.Join(validator.ErrValidation, errors.New("intake: submission is incomplete"))

// State is the terminal state of one submit.
type State string

const (
	StateRejected        State = "rejected"
	StatePersistFailed   State = "persist_failed"
	StateNotifyFailed    State = "notify_failed"
	StateNotifySucceeded State = "notify_succeeded"
)

// Outcome reports what happened to a submit and what to tell the user.
type Outcome struct {
	State   State
	Saved   bool // records are in the store
	Records int
	Err     error
	Message string
}

// Success reports whether the submission was persisted.
func (o Outcome) Success() bool {
	return o.Saved
}

// Level maps the outcome to a UI severity: success, warning or error.
func (o Outcome) Level() string {
	switch o.State {
	case StateNotifySucceeded:
		return "success"
	case StateNotifyFailed, StateRejected:
		return "warning"
	default:
		return "error"
	}
}

type appender interface {
	Append(ctx context.Context, records []Record) ([]byte, error)
}

type notifier interface {
	Notify(ctx context.Context, faculty string, rows []ContactRow, storeContent []byte) error
}

// Archiver keeps an off-box copy of the store.
type Archiver interface {
	Archive(ctx context.Context, content []byte, contentType string) error
}

// Service runs the submit sequence: validate, persist, then notify.
// Notification is only attempted after the store write succeeded.
type Service struct {
	store    appender
	notifier notifier
	archiver Archiver
	log      *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithArchiver uploads the store after every successful write.
func WithArchiver(a Archiver) ServiceOption {
	return func(s *Service) {
		s.archiver = a
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a submit service.
func NewService(store appender, n notifier, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		notifier: n,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit processes a draft. Every external call is attempted exactly once.
func (s *Service) Submit(ctx context.Context, d Draft) Outcome {
	start := time.Now()
	log := s.log.With(logger.Component("intake"), logger.Action("submit"))

	v := d.Validate()
	if !v.CanSubmit {
		msg := "Please complete at least one university section with a valid email."
		if strings.TrimSpace(d.Faculty) == "" {
			msg = "Enter Faculty Name and complete all four fields for at least one university to enable Submit."
		}
		log.InfoContext(ctx, "submission rejected", logger.Result(string(StateRejected)))
		return Outcome{State: StateRejected, Err: ErrRejected, Message: msg}
	}

	records := d.Records()
	content, err := s.store.Append(ctx, records)
	if err != nil {
		log.ErrorContext(ctx, "failed to persist submission",
			logger.Result(string(StatePersistFailed)),
			logger.Elapsed(start),
			logger.Error(err),
		)
		return Outcome{
			State:   StatePersistFailed,
			Err:     err,
			Message: "Your response could not be saved. Nothing was recorded; please try again.",
		}
	}
	log.InfoContext(ctx, "submission persisted", logger.Count("records", len(records)))

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, content, AttachmentType); err != nil {
			log.WarnContext(ctx, "failed to archive store", logger.Error(err))
		}
	}

	out := Outcome{Saved: true, Records: len(records)}
	if err := s.notifier.Notify(ctx, d.Faculty, v.ValidRows, content); err != nil {
		out.State = StateNotifyFailed
		out.Err = err
		if errors.Is(err, ErrNotConfigured) {
			out.Message = "Your response has been saved, but the email notification was skipped because email is not configured."
			log.WarnContext(ctx, "notification skipped", logger.Result("not_configured"), logger.Error(err))
		} else {
			out.Message = "Your response has been saved, but the email notification could not be sent."
			log.ErrorContext(ctx, "notification failed", logger.Result(string(StateNotifyFailed)), logger.Error(err))
		}
		return out
	}

	out.State = StateNotifySucceeded
	out.Message = "Form submitted successfully! Your response has been saved and the recipient has been notified."
	log.InfoContext(ctx, "submission completed",
		logger.Result(string(StateNotifySucceeded)),
		logger.Elapsed(start),
	)
	return out
}
