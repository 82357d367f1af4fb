package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medidesk/frontdesk/internal/domain/doctor"
	"github.com/medidesk/frontdesk/internal/service"
)

type DoctorHandler struct {
	svc *service.DoctorService
}

func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

type doctorRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Specialty string `json:"specialty" binding:"required"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Create(c.Request.Context(), &doctor.CreateDoctorCommand{
		Name:      req.Name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, d)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, d)
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, doctors)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Update(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		Name:      req.Name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, d)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"detail": "doctor deleted"})
}
