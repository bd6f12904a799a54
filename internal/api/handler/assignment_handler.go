package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

// assignmentScreen holds what differs between the two assignment screens.
type assignmentScreen struct {
	side             ports.AssignmentSide
	path             string
	nav              string
	heading          string
	counterpartLabel string
	badSubjectID     string
	missingSubject   string
	success          string
	failure          string
}

var (
	assignClientsScreen = assignmentScreen{
		side:             ports.SideAccountant,
		path:             accountantsPath + "/assign-clients",
		nav:              "accountants",
		heading:          "Assign Clients",
		counterpartLabel: "Client",
		badSubjectID:     "Invalid or missing user ID.",
		missingSubject:   "Accountant not found or invalid user ID.",
		success:          "Client assigned successfully!",
		failure:          "Failed to assign clients",
	}
	assignAccountantsScreen = assignmentScreen{
		side:             ports.SideClient,
		path:             clientsPath + "/assign-accountants",
		nav:              "clients",
		heading:          "Assign Accountants",
		counterpartLabel: "Accountant",
		badSubjectID:     "Invalid or missing client ID.",
		missingSubject:   "Client not found or invalid client ID.",
		success:          "Accountant assigned successfully!",
		failure:          "Failed to assign accountant",
	}
)

// AssignmentHandler serves one assignment screen: the assignment form on
// top and the subject's assignments below.
type AssignmentHandler struct {
	views
	screen      assignmentScreen
	assignments ports.AssignmentService
}

// NewAssignClientsHandler serves the accountant side.
func NewAssignClientsHandler(auth ports.AuthService, assignments ports.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{views: views{auth: auth, logger: logger}, screen: assignClientsScreen, assignments: assignments}
}

// NewAssignAccountantsHandler serves the client side.
func NewAssignAccountantsHandler(auth ports.AuthService, assignments ports.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{views: views{auth: auth, logger: logger}, screen: assignAccountantsScreen, assignments: assignments}
}

type assignView struct {
	Heading          string
	CounterpartLabel string
	Action           string
	BackURL          string
	SubjectParam     string
	ReloadOnChange   bool

	Blocked  bool
	IDErrors []string

	Subject       *domain.User
	Form          assignForm
	Errors        FieldErrors
	Counterparts  []domain.User
	Services      []domain.Service
	ServicesError string
	Editing       bool

	Listing       Listing
	Assignments   []domain.Assignment
	ServiceFilter []domain.Service
}

// EditURL opens assignment id in this screen's form.
func (v assignView) EditURL(id domain.ID) string {
	return v.Listing.Path + "?" + url.Values{"id": {v.SubjectParam}, "aid": {domain.EncodeID(id)}}.Encode()
}

// target is the subject and optional assignment named by the URL.
type target struct {
	subject      domain.ID
	assignment   domain.ID
	subjectParam string
}

// resolveTarget decodes ?id= and ?aid=. Every failure is collected so the
// page can list them all.
func (h *AssignmentHandler) resolveTarget(c echo.Context) (target, []string) {
	var (
		t    target
		errs []string
		err  error
	)
	t.subjectParam = c.QueryParam("id")
	if t.subject, err = domain.DecodeID(t.subjectParam); err != nil {
		errs = append(errs, h.screen.badSubjectID)
	}
	if raw := c.QueryParam("aid"); raw != "" {
		if t.assignment, err = domain.DecodeID(raw); err != nil {
			errs = append(errs, "Invalid assignment ID.")
		}
	}
	return t, errs
}

// fixedParams are the subject and assignment ids every link and form of
// the screen carries.
func (h *AssignmentHandler) fixedParams(t target) url.Values {
	v := url.Values{"id": {t.subjectParam}}
	if t.assignment != "" {
		v.Set("aid", domain.EncodeID(t.assignment))
	}
	return v
}

func (h *AssignmentHandler) action(t target) string {
	return h.screen.path + "?" + h.fixedParams(t).Encode()
}

func (h *AssignmentHandler) Page(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	t, idErrs := h.resolveTarget(c)
	if len(idErrs) > 0 {
		return h.blocked(c, http.StatusBadRequest, idErrs)
	}

	form, err := h.assignments.Prepare(c.Request().Context(), sess.Token, ports.AssignmentFormInput{
		Side:         h.screen.side,
		SubjectID:    t.subject,
		AssignmentID: t.assignment,
	})
	if err != nil {
		return h.prepareFailed(c, err)
	}

	values := assignForm{
		Counterpart:  form.Counterpart.String(),
		Services:     form.SelectedServices,
		AssignmentID: t.assignment.String(),
	}
	return h.renderForm(c, http.StatusOK, sess, t, form, values, nil, nil)
}

// Assign validates the selection before any backend call and submits it.
// On success the browser gets a fresh form with a success banner.
func (h *AssignmentHandler) Assign(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	t, idErrs := h.resolveTarget(c)
	if len(idErrs) > 0 {
		return h.blocked(c, http.StatusBadRequest, idErrs)
	}

	var values assignForm
	if err := c.Bind(&values); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	values.side = h.screen.side
	values.AssignmentID = t.assignment.String()
	if values.Services == nil {
		values.Services = []string{}
	}

	prepare := func() (*ports.AssignmentForm, error) {
		return h.assignments.Prepare(c.Request().Context(), sess.Token, ports.AssignmentFormInput{
			Side:         h.screen.side,
			SubjectID:    t.subject,
			AssignmentID: t.assignment,
			Counterpart:  domain.ID(values.Counterpart),
		})
	}

	if values.reloading() {
		form, err := prepare()
		if err != nil {
			return h.prepareFailed(c, err)
		}
		return h.renderForm(c, http.StatusOK, sess, t, form, values, nil, nil)
	}

	if err := c.Validate(&values); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		form, perr := prepare()
		if perr != nil {
			return h.prepareFailed(c, perr)
		}
		return h.renderForm(c, http.StatusUnprocessableEntity, sess, t, form, values, fe, nil)
	}

	if _, err := h.assignments.Assign(c.Request().Context(), sess.Token, values.request(h.screen.side, t.subject)); err != nil {
		if isUnauthorized(err) {
			return err
		}
		h.logger.Warn().Err(err).Msg("assignment failed")
		form, perr := prepare()
		if perr != nil {
			return h.prepareFailed(c, perr)
		}
		return h.renderForm(c, http.StatusBadGateway, sess, t, form, values, nil, danger(domain.Message(err, h.screen.failure)))
	}

	fresh := h.screen.path + "?" + url.Values{"id": {t.subjectParam}}.Encode()
	return h.redirect(c, fresh, domain.FlashSuccess, h.screen.success)
}

func (h *AssignmentHandler) prepareFailed(c echo.Context, err error) error {
	switch {
	case isUnauthorized(err):
		return err
	case errors.Is(err, domain.ErrAssignmentUnavailable):
		h.logger.Warn().Err(err).Msg("assignment lookup failed")
		return h.blocked(c, http.StatusNotFound, []string{"Failed to load assignment details."})
	case errors.Is(err, domain.ErrSubjectUnavailable), errors.Is(err, domain.ErrInvalidID):
		h.logger.Warn().Err(err).Msg("assignment subject lookup failed")
		return h.blocked(c, http.StatusNotFound, []string{h.screen.missingSubject})
	}
	return err
}

func (h *AssignmentHandler) blocked(c echo.Context, status int, idErrs []string) error {
	back := accountantsPath
	if h.screen.side == ports.SideClient {
		back = clientsPath
	}
	return h.render(c, status, "assign", Page{
		Title: h.screen.heading,
		Nav:   h.screen.nav,
		Data: assignView{
			Heading:  h.screen.heading,
			BackURL:  back,
			Blocked:  true,
			IDErrors: idErrs,
		},
	})
}

func (h *AssignmentHandler) renderForm(c echo.Context, status int, sess *domain.Session, t target, form *ports.AssignmentForm, values assignForm, fe FieldErrors, flash *domain.Flash) error {
	ctx := c.Request().Context()
	q := listQuery(c)
	filter := domain.AssignmentFilter{Query: q}
	if h.screen.side == ports.SideAccountant {
		filter.AccountantID = t.subject
	} else {
		filter.ClientID = t.subject
	}
	page := h.assignments.List(ctx, sess.Token, filter)

	values.AssignmentID = t.assignment.String()
	return h.render(c, status, "assign", Page{
		Title: h.screen.heading,
		Nav:   h.screen.nav,
		Flash: flash,
		Data: assignView{
			Heading:          h.screen.heading,
			CounterpartLabel: h.screen.counterpartLabel,
			Action:           h.action(t),
			SubjectParam:     t.subjectParam,
			ReloadOnChange:   h.screen.side == ports.SideClient,

			Subject:       form.Subject,
			Form:          values,
			Errors:        fe,
			Counterparts:  form.Counterparts,
			Services:      form.Services,
			ServicesError: form.ServicesError,
			Editing:       form.Editing,

			Listing:       newListing(h.screen.path, q, page.TotalPages, h.fixedParams(t)),
			Assignments:   page.Items,
			ServiceFilter: h.assignments.ServiceFilter(ctx, sess.Token),
		},
	})
}
