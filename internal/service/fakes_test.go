package service

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/domain"
	"github.com/medidesk/frontdesk/internal/domain/appointment"
	"github.com/medidesk/frontdesk/internal/domain/doctor"
	"github.com/medidesk/frontdesk/internal/domain/patient"
	"github.com/medidesk/frontdesk/pkg/metrics"
)

// fakeStore is an in-memory record store shared by the fake repositories.
// It mirrors the contract the real store provides: monotonically increasing
// ids per kind, token assignment atomic with the insert, and cascade delete
// from patients/doctors to their appointments.
type fakeStore struct {
	mu sync.Mutex

	nextPatientID     uint
	nextDoctorID      uint
	nextAppointmentID uint

	patients     map[uint]*patient.Patient
	doctors      map[uint]*doctor.Doctor
	appointments map[uint]*appointment.Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		patients:     make(map[uint]*patient.Patient),
		doctors:      make(map[uint]*doctor.Doctor),
		appointments: make(map[uint]*appointment.Appointment),
	}
}

type fakePatientRepo struct{ store *fakeStore }

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextPatientID++
	p.ID = r.store.nextPatientID
	cp := *p
	r.store.patients[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uint) (*patient.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Update(_ context.Context, id uint, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	p.Name, p.Phone, p.Age, p.Gender = cmd.Name, cmd.Phone, cmd.Age, cmd.Gender
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.patients[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(r.store.patients, id)
	for aid, a := range r.store.appointments {
		if a.PatientID == id {
			delete(r.store.appointments, aid)
		}
	}
	return nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*patient.Patient, 0, len(r.store.patients))
	for _, p := range r.store.patients {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeDoctorRepo struct{ store *fakeStore }

func (r *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextDoctorID++
	d.ID = r.store.nextDoctorID
	cp := *d
	r.store.doctors[d.ID] = &cp
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id uint) (*doctor.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, id uint, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	d.Name, d.Phone, d.Specialty = cmd.Name, cmd.Phone, cmd.Specialty
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.doctors[id]; !ok {
		return doctor.ErrDoctorNotFound
	}
	delete(r.store.doctors, id)
	for aid, a := range r.store.appointments {
		if a.DoctorID == id {
			delete(r.store.appointments, aid)
		}
	}
	return nil
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]*doctor.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*doctor.Doctor, 0, len(r.store.doctors))
	for _, d := range r.store.doctors {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAppointmentRepo struct {
	store *fakeStore

	// failCreate simulates a store failure on insert.
	failCreate error
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextAppointmentID++
	a.ID = r.store.nextAppointmentID
	a.TokenNumber = a.ID
	cp := *a
	r.store.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uint) (*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id uint, cmd *appointment.RescheduleAppointmentCommand) (*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.PatientID, a.DoctorID, a.Date, a.Time = cmd.PatientID, cmd.DoctorID, cmd.Date, cmd.Time
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.appointments[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(r.store.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context) ([]*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*appointment.Appointment, 0, len(r.store.appointments))
	for _, a := range r.store.appointments {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// testCollector is shared across the package's tests: prometheus collectors
// register against the default registry and cannot be created twice.
var (
	collectorOnce sync.Once
	testCollector *metrics.Collector
)

func newTestAudit() *AuditService {
	collectorOnce.Do(func() {
		testCollector = metrics.NewCollector("frontdesk_test")
	})
	return NewAuditService(&fakeAuditRepo{}, testCollector, zap.NewNop())
}

type env struct {
	store           *fakeStore
	patientRepo     *fakePatientRepo
	doctorRepo      *fakeDoctorRepo
	appointmentRepo *fakeAppointmentRepo

	patients     *PatientService
	doctors      *DoctorService
	appointments *AppointmentService
}

func newEnv() *env {
	store := newFakeStore()
	pr := &fakePatientRepo{store: store}
	dr := &fakeDoctorRepo{store: store}
	ar := &fakeAppointmentRepo{store: store}
	audit := newTestAudit()
	log := zap.NewNop()

	return &env{
		store:           store,
		patientRepo:     pr,
		doctorRepo:      dr,
		appointmentRepo: ar,
		patients:        NewPatientService(pr, audit, testCollector, log),
		doctors:         NewDoctorService(dr, audit, testCollector, log),
		appointments:    NewAppointmentService(ar, pr, dr, audit, testCollector, log),
	}
}
