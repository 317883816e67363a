package intake

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/contactform/core/binder"
	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/response"
	"github.com/dmitrymomot/contactform/core/router"
	"github.com/dmitrymomot/contactform/core/sanitizer"
	"github.com/dmitrymomot/contactform/core/session"
)

// SubmittedEvent is the htmx event fired on the page after every submit.
const SubmittedEvent = "intake:submitted"

// SessionTransport loads and saves the per-user draft session.
type SessionTransport interface {
	Load(r *http.Request) (session.Session[Draft], error)
	Save(w http.ResponseWriter, r *http.Request, sess session.Session[Draft]) (session.Session[Draft], error)
}

// Handler serves the intake page and its htmx endpoints.
type Handler struct {
	sessions SessionTransport
	service  *Service
	branding Branding
	bind     binder.Binder
	log      *slog.Logger

	submitMiddlewares []handler.Middleware[handler.Context]
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSubmitMiddleware wraps only the submit endpoint, e.g. with a rate limiter.
func WithSubmitMiddleware(mws ...handler.Middleware[handler.Context]) HandlerOption {
	return func(h *Handler) {
		h.submitMiddlewares = append(h.submitMiddlewares, mws...)
	}
}

// NewHandler creates the HTTP handlers.
func NewHandler(sessions SessionTransport, service *Service, branding Branding, log *slog.Logger, opts ...HandlerOption) *Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		sessions: sessions,
		service:  service,
		branding: branding,
		bind:     binder.Form(),
		log:      log.With(logger.Component("intake.http")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount registers the routes on r.
func (h *Handler) Mount(r router.Router[handler.Context]) {
	r.Get("/", h.page)
	r.Post("/validate", h.validate)
	r.Post("/rows", h.addRow)
	r.With(h.submitMiddlewares...).Post("/submit", h.submit)
}

// page renders the form from the stored draft.
func (h *Handler) page(ctx handler.Context) handler.Response {
	sess, err := h.sessions.Load(ctx.Request())
	if err != nil {
		return h.fail(ctx, "load session", err)
	}

	draft := sess.Data
	draft.Normalize()
	sess.SetData(draft)

	if _, err := h.sessions.Save(ctx.ResponseWriter(), ctx.Request(), sess); err != nil {
		return h.fail(ctx, "save session", err)
	}
	return response.Templ(Page(newPageData(h.branding, draft, nil)))
}

// validate stores the posted draft and re-renders the live status block.
func (h *Handler) validate(ctx handler.Context) handler.Response {
	draft, resp := h.bindDraft(ctx)
	if resp != nil {
		return resp
	}
	if resp := h.saveDraft(ctx, draft); resp != nil {
		return resp
	}
	return response.Templ(Status(newPageData(h.branding, draft, nil)))
}

// addRow appends a contact block to the posted draft.
func (h *Handler) addRow(ctx handler.Context) handler.Response {
	draft, resp := h.bindDraft(ctx)
	if resp != nil {
		return resp
	}
	draft.AddRow()
	if resp := h.saveDraft(ctx, draft); resp != nil {
		return resp
	}

	if response.IsHTMXRequest(ctx.Request()) {
		return response.Templ(Form(newPageData(h.branding, draft, nil)))
	}
	return response.RedirectSeeOther("/")
}

// submit runs the submit sequence and renders its outcome. The draft is
// reset only after the records were persisted.
func (h *Handler) submit(ctx handler.Context) handler.Response {
	draft, resp := h.bindDraft(ctx)
	if resp != nil {
		return resp
	}

	outcome := h.service.Submit(ctx, draft)
	if outcome.Success() {
		draft = NewDraft()
	}
	if resp := h.saveDraft(ctx, draft); resp != nil {
		return resp
	}

	data := newPageData(h.branding, draft, &outcome)
	if response.IsHTMXRequest(ctx.Request()) {
		// htmx does not swap error responses by default.
		return response.WithHTMX(response.Templ(Form(data)),
			response.TriggerEvent(SubmittedEvent, map[string]any{
				"state":   outcome.State,
				"records": outcome.Records,
			}),
		)
	}
	return response.TemplWithStatus(Page(data), outcomeStatus(outcome))
}

func (h *Handler) bindDraft(ctx handler.Context) (Draft, handler.Response) {
	var form draftForm
	if err := h.bind(ctx.Request(), &form); err != nil {
		if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
			return Draft{}, response.Error(response.ErrUnsupportedMediaType.WithError(err))
		}
		return Draft{}, response.Error(response.ErrBadRequest.WithError(err))
	}
	if err := sanitizer.SanitizeStruct(&form); err != nil {
		return Draft{}, response.Error(response.ErrBadRequest.WithError(err))
	}
	return form.draft(), nil
}

func (h *Handler) saveDraft(ctx handler.Context, draft Draft) handler.Response {
	sess, err := h.sessions.Load(ctx.Request())
	if err != nil {
		return h.fail(ctx, "load session", err)
	}
	sess.SetData(draft)
	if _, err := h.sessions.Save(ctx.ResponseWriter(), ctx.Request(), sess); err != nil {
		return h.fail(ctx, "save session", err)
	}
	return nil
}

func (h *Handler) fail(ctx handler.Context, action string, err error) handler.Response {
	h.log.ErrorContext(ctx, "request failed", logger.Action(action), logger.Error(err))
	return response.Error(response.ErrInternalServerError.WithError(err))
}

func outcomeStatus(o Outcome) int {
	switch o.State {
	case StateRejected:
		return http.StatusUnprocessableEntity
	case StatePersistFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
