package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/metrics"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/validation"
)

// Submission results.
const (
	submitSaved    = "saved"
	submitInvalid  = "invalid"
	submitInFlight = "in_flight"
	submitError    = "error"
)

// FormHandler serves the record editors: resume, company profile, job
// posting and blog.
type FormHandler struct {
	records ports.RecordService
}

func NewFormHandler(records ports.RecordService) *FormHandler {
	return &FormHandler{records: records}
}

type formView struct {
	Form   string         `json:"form"`
	ID     string         `json:"id,omitempty"`
	Record formstate.Tree `json:"record"`
}

func formRef(c echo.Context) ports.FormRef {
	return ports.FormRef{Kind: formKind(c), ID: c.Param("id")}
}

func (h *FormHandler) view(c echo.Context, ref ports.FormRef, tree formstate.Tree, notes ...Notification) error {
	return render(c, "form:"+ref.Kind, formView{Form: ref.Kind, ID: ref.ID, Record: tree}, notes...)
}

// Open loads the record into a fresh working copy, discarding unsaved edits.
//
// @Summary      Open a record form
// @Tags         forms
// @Produce      json
// @Param        kind  path      string  true   "resume, company, job or blog"
// @Param        id    path      string  false  "Record ID when editing a job or blog"
// @Success      200   {object}  Page
// @Failure      404   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /forms/{kind}/{id} [get]
func (h *FormHandler) Open(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ref := formRef(c)
	tree, err := h.records.Open(c.Request().Context(), sid, sess, ref)
	if err != nil {
		return err
	}
	return h.view(c, ref, tree)
}

// Draft returns the working copy as it stands.
//
// @Summary      Current draft of a record form
// @Tags         forms
// @Produce      json
// @Param        kind  path      string  true   "resume, company, job or blog"
// @Param        id    path      string  false  "Record ID"
// @Success      200   {object}  Page
// @Failure      404   {object}  ErrorResponse
// @Router       /forms/{kind}/{id}/draft [get]
func (h *FormHandler) Draft(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	ref := formRef(c)
	tree, err := h.records.Draft(c.Request().Context(), sid, ref)
	if err != nil {
		return err
	}
	return h.view(c, ref, tree)
}

// Edit applies one editor op to the working copy.
//
// @Summary      Edit a record form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        kind  path      string        true   "resume, company, job or blog"
// @Param        id    path      string        false  "Record ID"
// @Param        body  body      formstate.Op  true   "Editor op"
// @Success      200   {object}  Page
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /forms/{kind}/{id} [patch]
func (h *FormHandler) Edit(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	var op formstate.Op
	if err := bind(c, &op); err != nil {
		return err
	}
	ref := formRef(c)
	tree, err := h.records.Edit(c.Request().Context(), sid, ref, op)
	if err != nil {
		return err
	}
	metrics.FormEditsTotal.WithLabelValues(ref.Kind, op.Op).Inc()
	return h.view(c, ref, tree)
}

// Submit validates the working copy and saves it upstream. On success the
// browser is sent to the record's page.
//
// @Summary      Submit a record form
// @Tags         forms
// @Produce      json
// @Param        kind  path      string  true   "resume, company, job or blog"
// @Param        id    path      string  false  "Record ID"
// @Success      303
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /forms/{kind}/{id} [post]
func (h *FormHandler) Submit(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ref := formRef(c)
	res, err := h.records.Submit(c.Request().Context(), sid, sess, ref)
	if err != nil {
		metrics.FormSubmissionsTotal.WithLabelValues(ref.Kind, submitResult(err)).Inc()
		countViolations(ref.Kind, err)
		return err
	}
	metrics.FormSubmissionsTotal.WithLabelValues(ref.Kind, submitSaved).Inc()

	n := success(res.Message)
	return seeOther(c, res.Redirect, &n)
}

func submitResult(err error) string {
	if _, ok := validation.AsError(err); ok {
		return submitInvalid
	}
	if errors.Is(err, domain.ErrSubmitInFlight) {
		return submitInFlight
	}
	return submitError
}
