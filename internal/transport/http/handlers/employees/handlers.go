package employeeshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"empform/internal/domain/employee"
	"empform/internal/platform/export"
	"empform/internal/transport/http/api"
	"empform/internal/transport/http/middleware"
	"empform/internal/transport/http/shared"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	Service   *employee.Service
	OutputDir string
}

func NewHandler(service *employee.Service, outputDir string) *Handler {
	return &Handler{Service: service, OutputDir: outputDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSave)
		r.Get("/export.xlsx", h.handleExport)
		r.Route("/{row}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Get("/slip.pdf", h.handleSlip)
		})
	})
	r.Get("/catalog", h.handleCatalog)
	r.Post("/input/filter", h.handleFilter)
}

type savePayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Salary    string `json:"salary"`
	Position  string `json:"position"`
	Gender    string `json:"gender"`
	HireDate  string `json:"hireDate"`
	FileName  string `json:"fileName"`
}

type rowView struct {
	Row    int             `json:"row"`
	Cells  []string        `json:"cells"`
	Record employee.Record `json:"record"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload savePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	in := employee.Input{
		ID:        payload.ID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Address:   payload.Address,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Salary:    payload.Salary,
		Position:  payload.Position,
		Gender:    payload.Gender,
	}
	hireDate, err := shared.ParseDate(payload.HireDate)
	if err != nil {
		// The field rules run first so the earliest failing field is reported.
		if fe := h.Service.Validate(in); fe != nil {
			shared.FailField(w, requestID, *fe)
			return
		}
		shared.FailValidation(w, requestID, "Hire date must be a valid date.", []shared.ValidationIssue{{
			Field:  string(employee.FieldHireDate),
			Reason: "must be a valid date in YYYY-MM-DD or DD/MM/YYYY format",
		}})
		return
	}
	in.HireDate = hireDate
	dest := employee.DirDestination{Dir: h.OutputDir, Name: payload.FileName}

	result, err := h.Service.Save(r.Context(), in, dest)
	if err != nil {
		var ve *employee.ValidationError
		var we *employee.WriteError
		switch {
		case errors.As(err, &ve):
			shared.FailField(w, requestID, ve.FieldError)
		case errors.Is(err, employee.ErrCancelled):
			api.Fail(w, http.StatusBadRequest, "save_cancelled", "no destination file name was given", requestID)
		case errors.Is(err, employee.ErrExists) && errors.As(err, &we):
			api.FailWithDetails(w, http.StatusConflict, "record_exists",
				"a record file with this name already exists",
				map[string]any{"path": we.Path}, requestID)
		case errors.As(err, &we):
			slog.Warn("record write failed", "path", we.Path, "err", we.Err, "requestId", requestID)
			api.FailWithDetails(w, http.StatusInternalServerError, "record_write_failed",
				"failed to save the record file: "+we.Err.Error(),
				map[string]any{"path": we.Path}, requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "save_failed", err.Error(), requestID)
		}
		return
	}

	api.Created(w, map[string]any{
		"row":    result.Row,
		"path":   result.Path,
		"record": result.Record,
	}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rows := h.Service.Table().Rows()
	page := shared.ParsePagination(r, 100, 1000)
	start, end := page.Window(len(rows))

	views := make([]rowView, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, rowView{Row: i + 1, Cells: employee.Row(rows[i]), Record: rows[i]})
	}
	api.Success(w, map[string]any{
		"columns": employee.Columns,
		"rows":    views,
		"total":   len(rows),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	row, rec, ok := h.lookupRow(w, r)
	if !ok {
		return
	}
	api.Success(w, rowView{Row: row, Cells: employee.Row(rec), Record: rec}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	row, rec, ok := h.lookupRow(w, r)
	if !ok {
		return
	}
	body, err := export.SlipPDF(rec)
	if err != nil {
		slog.Warn("slip render failed", "row", row, "err", err)
		api.Fail(w, http.StatusInternalServerError, "slip_render_failed", "failed to render slip", middleware.GetRequestID(r.Context()))
		return
	}
	api.Attachment(w, contentTypePDF, "Employee_"+rec.ID+".pdf", body)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := export.TableXLSX(employee.Columns, h.Service.Table().Cells())
	if err != nil {
		slog.Warn("table export failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export table", middleware.GetRequestID(r.Context()))
		return
	}
	api.Attachment(w, contentTypeXLSX, "employees.xlsx", body)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Catalog(), middleware.GetRequestID(r.Context()))
}

type filterPayload struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload filterPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	field := employee.Field(payload.Field)
	if !knownField(field) {
		shared.FailValidation(w, requestID, "", []shared.ValidationIssue{{Field: "field", Reason: "unknown form field"}})
		return
	}
	kind := employee.KindOf(field)
	text, rejected := employee.FilterInput(kind, payload.Text)
	api.Success(w, map[string]any{
		"field":    field,
		"kind":     kind.String(),
		"text":     text,
		"rejected": rejected,
	}, requestID)
}

func (h *Handler) lookupRow(w http.ResponseWriter, r *http.Request) (int, employee.Record, bool) {
	requestID := middleware.GetRequestID(r.Context())
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_row", "row must be a number", requestID)
		return 0, employee.Record{}, false
	}
	rec, err := h.Service.Table().Get(row)
	if errors.Is(err, employee.ErrRowNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "table row not found", requestID)
		return 0, employee.Record{}, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "row_lookup_failed", "failed to read table row", requestID)
		return 0, employee.Record{}, false
	}
	return row, rec, true
}

func knownField(f employee.Field) bool {
	for _, candidate := range employee.FormFields {
		if candidate == f {
			return true
		}
	}
	return false
}
