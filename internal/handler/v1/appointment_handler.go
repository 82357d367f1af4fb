package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medidesk/frontdesk/internal/domain/appointment"
	"github.com/medidesk/frontdesk/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type appointmentRequest struct {
	PatientID uint                  `json:"patient_id" binding:"required"`
	DoctorID  uint                  `json:"doctor_id" binding:"required"`
	Date      appointment.Date      `json:"date" binding:"required"`
	Time      appointment.TimeOfDay `json:"time"`
}

// Create books an appointment. A dangling patient or doctor reference maps
// to 404, naming the missing entity.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.Book(c.Request.Context(), &appointment.BookAppointmentCommand{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, appointments)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.Reschedule(c.Request.Context(), id, &appointment.RescheduleAppointmentCommand{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"detail": "appointment cancelled"})
}
