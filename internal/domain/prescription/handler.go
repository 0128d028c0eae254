package prescription

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medscript/medscript/internal/domain/doctor"
	"github.com/medscript/medscript/internal/domain/patient"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/prescriptions", h.CreatePrescription)
	api.GET("/prescriptions/:id", h.GetPrescription)
	api.GET("/patients/:id", h.GetPatientDetails)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return mapWorkflowError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/prescriptions/%d", id))
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetPatientDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	pd, err := h.svc.GetPatientDetails(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if pd.Prescriptions == nil {
		pd.Prescriptions = []Details{}
	}
	return c.JSON(http.StatusOK, pd)
}

// mapWorkflowError translates the workflow's failure taxonomy to transport
// responses. Each kind stays distinct up to this point; anything
// unclassified becomes a generic 500 with no internal detail.
func mapWorkflowError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Fields)
	}
	var me *MedicamentsNotFoundError
	if errors.As(err, &me) {
		return echo.NewHTTPError(http.StatusNotFound, me.Error())
	}
	if errors.Is(err, doctor.ErrNotFound) || errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if errors.Is(err, ErrConflict) {
		return echo.NewHTTPError(http.StatusConflict, ErrConflict.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
