package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

const accountantsPath = "/dashboard/accountants"

type AccountantHandler struct {
	views
	users ports.UserService
}

func NewAccountantHandler(auth ports.AuthService, users ports.UserService, logger zerolog.Logger) *AccountantHandler {
	return &AccountantHandler{views: views{auth: auth, logger: logger}, users: users}
}

func (h *AccountantHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	q := listQuery(c)
	page := h.users.ListAccountants(c.Request().Context(), sess.Token, q)
	return h.render(c, http.StatusOK, "accountants", Page{
		Title: "Accountants",
		Nav:   "accountants",
		Data: userListView{
			Listing: newListing(accountantsPath, q, page.TotalPages, nil),
			Users:   page.Items,
		},
	})
}

// Form renders the create form, or the edit form prefilled from the API.
func (h *AccountantHandler) Form(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := editID(c)
	if err != nil {
		return err
	}

	view := accountantFormView{
		Action:  formAction(accountantsPath, id),
		Editing: id != "",
		Form:    accountantForm{Status: "active", Services: []string{}},
	}
	var flash *domain.Flash
	if id != "" {
		p, err := h.users.LoadAccountant(c.Request().Context(), sess.Token, id)
		switch {
		case isUnauthorized(err):
			return err
		case err != nil:
			h.logger.Warn().Err(err).Str("user_id", id.String()).Msg("accountant prefill failed")
			flash = danger("Failed to load user data.")
		default:
			view.Form = accountantFormFrom(id, p)
		}
	}

	view.Services, err = h.services(c, sess.Token)
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		flash = danger("Failed to load services.")
	}
	return h.renderForm(c, http.StatusOK, view, flash)
}

// Save validates the form before any backend call, then creates or updates
// the accountant. An empty password on edit keeps the stored one.
func (h *AccountantHandler) Save(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := editID(c)
	if err != nil {
		return err
	}

	var form accountantForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	form.ID = id.String()
	form.trim()

	view := accountantFormView{Action: formAction(accountantsPath, id), Editing: id != "", Form: form}
	if err := c.Validate(&form); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		view.Errors = fe
		view.Services, _ = h.services(c, sess.Token)
		return h.renderForm(c, http.StatusUnprocessableEntity, view, danger(msgFixErrors))
	}

	msg, err := h.users.SaveAccountant(c.Request().Context(), sess.Token, id, form.payload())
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		h.logger.Warn().Err(err).Msg("accountant save failed")
		view.Services, _ = h.services(c, sess.Token)
		return h.renderForm(c, http.StatusBadGateway, view, danger(domain.Message(err, "Failed to save user.")))
	}
	return h.redirect(c, accountantsPath, domain.FlashSuccess, msg)
}

func (h *AccountantHandler) services(c echo.Context, token string) ([]domain.Service, error) {
	services, err := h.users.Services(c.Request().Context(), token, "")
	if err != nil {
		h.logger.Warn().Err(err).Msg("service catalog lookup failed")
		return []domain.Service{}, err
	}
	return services, nil
}

func (h *AccountantHandler) renderForm(c echo.Context, status int, view accountantFormView, flash *domain.Flash) error {
	title := "Create Accountant"
	if view.Editing {
		title = "Edit Accountant"
	}
	view.Form.Password = ""
	return h.render(c, status, "accountant_form", Page{Title: title, Nav: "accountants", Flash: flash, Data: view})
}

func (h *AccountantHandler) Delete(c echo.Context) error {
	return deleteUser(c, h.views, h.users, accountantsPath, "Failed to delete accountant.")
}

func (h *AccountantHandler) Status(c echo.Context) error {
	return toggleStatus(c, h.views, h.users, accountantsPath)
}

// editID is the id of the user being edited: required on the update
// routes, empty on create.
func editID(c echo.Context) (domain.ID, error) {
	if !strings.HasSuffix(c.Path(), "/update") {
		return "", nil
	}
	return idParam(c, "id")
}

func formAction(base string, id domain.ID) string {
	if id == "" {
		return base + "/create"
	}
	return base + "/update?id=" + url.QueryEscape(domain.EncodeID(id))
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func deleteUser(c echo.Context, v views, users ports.UserService, listPath, failMsg string) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	target := returnTo(c, listPath)
	if err := users.Delete(c.Request().Context(), sess.Token, id); err != nil {
		if isUnauthorized(err) {
			return err
		}
		v.logger.Warn().Err(err).Str("user_id", id.String()).Msg("delete failed")
		return v.redirect(c, target, domain.FlashDanger, failMsg)
	}
	return v.redirect(c, target, domain.FlashSuccess, "User deleted successfully.")
}

// toggleStatus flips the posted status. Confirmation before deactivating
// happens in the page.
func toggleStatus(c echo.Context, v views, users ports.UserService, listPath string) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	current, ok := domain.ParseStatus(c.FormValue("status"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	target := returnTo(c, listPath)
	if _, err := users.ToggleStatus(c.Request().Context(), sess.Token, id, current); err != nil {
		if isUnauthorized(err) {
			return err
		}
		v.logger.Warn().Err(err).Str("user_id", id.String()).Msg("status update failed")
		return v.redirect(c, target, domain.FlashDanger, "Failed to update status.")
	}
	return c.Redirect(http.StatusSeeOther, target)
}
