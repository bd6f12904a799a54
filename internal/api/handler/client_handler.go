package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

const clientsPath = "/dashboard/clients"

type ClientHandler struct {
	views
	users ports.UserService
}

func NewClientHandler(auth ports.AuthService, users ports.UserService, logger zerolog.Logger) *ClientHandler {
	return &ClientHandler{views: views{auth: auth, logger: logger}, users: users}
}

func (h *ClientHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	q := listQuery(c)
	page := h.users.ListClients(c.Request().Context(), sess.Token, q)
	return h.render(c, http.StatusOK, "clients", Page{
		Title: "Clients",
		Nav:   "clients",
		Data: userListView{
			Listing: newListing(clientsPath, q, page.TotalPages, nil),
			Users:   page.Items,
		},
	})
}

func (h *ClientHandler) Form(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := editID(c)
	if err != nil {
		return err
	}

	view := clientFormView{
		Action:  formAction(clientsPath, id),
		Editing: id != "",
		Form:    clientForm{Status: "1"},
	}
	var flash *domain.Flash
	if id != "" {
		p, err := h.users.LoadClient(c.Request().Context(), sess.Token, id)
		switch {
		case isUnauthorized(err):
			return err
		case err != nil:
			h.logger.Warn().Err(err).Str("user_id", id.String()).Msg("client prefill failed")
			flash = danger("Failed to load user data.")
		default:
			view.Form = clientFormFrom(id, p)
		}
	}
	return h.renderForm(c, http.StatusOK, view, flash)
}

// Save validates the form before any backend call, then creates or updates
// the client. An empty password on edit keeps the stored one.
func (h *ClientHandler) Save(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := editID(c)
	if err != nil {
		return err
	}

	var form clientForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	form.ID = id.String()
	form.trim()

	view := clientFormView{Action: formAction(clientsPath, id), Editing: id != "", Form: form}
	if err := c.Validate(&form); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		view.Errors = fe
		return h.renderForm(c, http.StatusUnprocessableEntity, view, danger(msgFixErrors))
	}

	msg, err := h.users.SaveClient(c.Request().Context(), sess.Token, id, form.payload())
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		h.logger.Warn().Err(err).Msg("client save failed")
		fallback := "Failed to create user"
		if id != "" {
			fallback = "Failed to update user"
		}
		return h.renderForm(c, http.StatusBadGateway, view, danger(domain.Message(err, fallback)))
	}
	return h.redirect(c, clientsPath, domain.FlashSuccess, msg)
}

func (h *ClientHandler) renderForm(c echo.Context, status int, view clientFormView, flash *domain.Flash) error {
	title := "Create Client"
	if view.Editing {
		title = "Edit Client"
	}
	view.Form.Password = ""
	return h.render(c, status, "client_form", Page{Title: title, Nav: "clients", Flash: flash, Data: view})
}

// View shows one client's details.
func (h *ClientHandler) View(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	u, err := h.users.GetUser(c.Request().Context(), sess.Token, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "client_view", Page{
		Title: "Client",
		Nav:   "clients",
		Data:  clientDetailView{User: u},
	})
}

func (h *ClientHandler) Delete(c echo.Context) error {
	return deleteUser(c, h.views, h.users, clientsPath, "Failed to delete user.")
}

func (h *ClientHandler) Status(c echo.Context) error {
	return toggleStatus(c, h.views, h.users, clientsPath)
}

// QuickBooks sends the browser to the API's QuickBooks authorisation flow.
func (h *ClientHandler) QuickBooks(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.users.QuickBooksConnectURL(id))
}

func (h *ClientHandler) RevokeQuickBooks(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	target := returnTo(c, clientsPath)
	if err := h.users.RevokeQuickBooks(c.Request().Context(), sess.Token, id); err != nil {
		if isUnauthorized(err) {
			return err
		}
		h.logger.Warn().Err(err).Str("client_id", id.String()).Msg("quickbooks revoke failed")
		return h.redirect(c, target, domain.FlashDanger, "Failed to revoke QuickBooks token.")
	}
	return h.redirect(c, target, domain.FlashSuccess, "QuickBooks token revoked successfully.")
}
