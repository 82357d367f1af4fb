package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medidesk/frontdesk/internal/domain/patient"
	"github.com/medidesk/frontdesk/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type patientRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Age    int    `json:"age" binding:"min=0"`
	Gender string `json:"gender" binding:"required"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &patient.CreatePatientCommand{
		Name:   req.Name,
		Phone:  req.Phone,
		Age:    req.Age,
		Gender: patient.NormalizeGender(req.Gender),
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, patients)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, &patient.UpdatePatientCommand{
		Name:   req.Name,
		Phone:  req.Phone,
		Age:    req.Age,
		Gender: patient.NormalizeGender(req.Gender),
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"detail": "patient deleted"})
}
