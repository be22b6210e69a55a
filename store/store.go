// Package store owns the in-memory snapshot of attendance data for the
// active view. Reads are served from the snapshot; every confirmed mutation
// re-fetches the full collection instead of merging deltas, then notifies
// the refresh bus.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ortm.io/hrportal/events"
	v1 "ortm.io/hrportal/hrapi/v1"
	"ortm.io/hrportal/hrapi/v1/common"
	"ortm.io/hrportal/pointage"
	"ortm.io/hrportal/utils"
)

const unknownLabel = "Inconnu"

// ErrFutureDate gates edits before they reach the API: attendance cannot be
// recorded for a day that has not happened yet.
var ErrFutureDate = errors.New("the attendance date cannot be in the future")

// ErrAlreadyClosed rejects a clock-out on a record that already has one;
// the transition is one-way.
var ErrAlreadyClosed = errors.New("the record is already clocked out")

// ValidationError carries a failed pre-submission check. It never comes
// from the server.
type ValidationError struct {
	Result pointage.ValidationResult
}

func (e *ValidationError) Error() string {
	return e.Result.Message
}

// Store is not safe for concurrent mutation by design: it models the state
// of a single page instance driven by one event loop.
type Store struct {
	// Clock overrides the wall clock, for tests; nil means time.Now.
	Clock func() time.Time

	client   *v1.Client
	bus      *events.Bus
	records  []pointage.Record
	employes []common.EmployeDTO
	user     *common.UserDTO
}

func New(client *v1.Client, bus *events.Bus) *Store {
	return &Store{client: client, bus: bus}
}

func (s *Store) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Reload fetches attendance records and the employee list, drops malformed
// entries and joins display fields onto each record. This is the single
// normalization point: nothing downstream needs fallback chains.
func (s *Store) Reload(ctx context.Context) error {
	pointages, err := s.client.Pointages.List(ctx)
	if err != nil {
		return fmt.Errorf("load pointages: %w", err)
	}
	employes, err := s.client.Employes.List(ctx)
	if err != nil {
		return fmt.Errorf("load employes: %w", err)
	}

	byCIN := make(map[string]common.EmployeDTO, len(employes))
	for _, e := range employes {
		byCIN[e.CIN] = e
	}

	valid := utils.Filter(pointages, func(dto common.PointageDTO) bool {
		return dto.ID != "" && dto.Employe != ""
	})
	s.records = utils.Map(valid, func(dto common.PointageDTO) pointage.Record {
		return normalizeRecord(dto, byCIN)
	})
	s.employes = employes
	return nil
}

func normalizeRecord(dto common.PointageDTO, byCIN map[string]common.EmployeDTO) pointage.Record {
	emp, known := byCIN[dto.Employe]

	name := utils.Format(dto.EmployeNom)
	if name == "" && known {
		name = emp.DisplayName()
	}
	if name == "" {
		name = dto.Employe
	}
	if name == "" {
		name = unknownLabel
	}

	matricule := unknownLabel
	if known {
		switch {
		case emp.Matricule != nil && *emp.Matricule != "":
			matricule = *emp.Matricule
		case emp.CIN != "":
			matricule = emp.CIN
		}
	} else if m := utils.Format(dto.EmployeMatricule); m != "" {
		matricule = m
	}

	rec := pointage.Record{
		ID:               dto.ID,
		EmployeID:        dto.Employe,
		Date:             dto.Date.String(),
		CheckIn:          dto.HeureEntree.String(),
		EmployeName:      name,
		EmployeMatricule: matricule,
	}
	if dto.HeureSortie != nil {
		rec.CheckOut = dto.HeureSortie.String()
	}
	rec.Note = utils.Format(dto.Remarque)
	if dto.CreatedBy != nil {
		rec.CreatedBy = *dto.CreatedBy
	}
	return rec
}

// RefreshUser fetches and caches the authenticated user for permission
// hints.
func (s *Store) RefreshUser(ctx context.Context) error {
	user, err := s.client.Users.Me(ctx)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

func (s *Store) CurrentUser() *common.UserDTO {
	return s.user
}

// Records returns a copy of the snapshot.
func (s *Store) Records() []pointage.Record {
	out := make([]pointage.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Employes() []common.EmployeDTO {
	out := make([]common.EmployeDTO, len(s.employes))
	copy(out, s.employes)
	return out
}

func (s *Store) Filter(q pointage.Query) []pointage.Record {
	return pointage.FilterRecords(s.records, q)
}

func (s *Store) Groups() []*pointage.EmployeeGroup {
	return pointage.GroupByEmployee(s.records)
}

func (s *Store) Stats() pointage.Summary {
	return pointage.Summarize(s.records)
}

// CanModify is the client-side authorization hint: superusers and the
// record's creator. The server enforces the real rule; hiding controls is
// all this is for.
func (s *Store) CanModify(user *common.UserDTO, r pointage.Record) bool {
	if user == nil {
		return false
	}
	return user.IsSuperuser || (r.CreatedBy != 0 && r.CreatedBy == user.ID)
}

// Create validates the form, posts it, reloads and announces the change.
// Validation failures never reach the wire.
func (s *Store) Create(ctx context.Context, form pointage.FormInput) error {
	dto, err := s.gate(form)
	if err != nil {
		return err
	}

	if _, err := s.client.Pointages.Create(ctx, dto); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.publish("created", form.ID)
	return nil
}

func (s *Store) Update(ctx context.Context, id string, form pointage.FormInput) error {
	dto, err := s.gate(form)
	if err != nil {
		return err
	}

	if _, err := s.client.Pointages.Update(ctx, id, dto); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.publish("updated", id)
	return nil
}

// Delete is irreversible; the caller is expected to have confirmed the
// action with the user already.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Pointages.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

// ClockOut closes an open record at the current wall-clock time. note
// replaces the record's note when non-empty.
func (s *Store) ClockOut(ctx context.Context, id string, note string) error {
	current := utils.Find(s.records, func(r *pointage.Record) bool { return r.ID == id })
	if current == nil {
		return fmt.Errorf("pointage %s not in the current snapshot", id)
	}
	if pointage.DeriveStatus(*current) == pointage.StatusClosed {
		return ErrAlreadyClosed
	}

	sortie := common.NewTimeOnly(s.now())
	dto := &common.PointageDTO{
		ID:          current.ID,
		Employe:     current.EmployeID,
		HeureSortie: &sortie,
	}
	if d, err := time.Parse(pointage.DateLayout, current.Date); err == nil {
		dto.Date = common.NewDateOnly(d)
	}
	if entree, err := common.ParseTimeOnly(current.CheckIn); err == nil {
		dto.HeureEntree = entree
	}
	if note == "" {
		note = current.Note
	}
	if note != "" {
		dto.Remarque = utils.Ptr(note)
	}

	if _, err := s.client.Pointages.Update(ctx, id, dto); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.publish("clocked_out", id)
	return nil
}

// gate runs the local checks that must hold before any network call.
func (s *Store) gate(form pointage.FormInput) (*common.PointageDTO, error) {
	if res := pointage.ValidateForSubmission(form); !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	date, err := time.Parse(pointage.DateLayout, form.Date)
	if err != nil {
		return nil, &ValidationError{Result: pointage.ValidationResult{
			Message: fmt.Sprintf("unreadable date %q", form.Date),
		}}
	}
	// "today" is the client's calendar day, not the UTC one
	if form.Date > s.now().Format(pointage.DateLayout) {
		return nil, ErrFutureDate
	}

	entree, err := common.ParseTimeOnly(form.CheckIn)
	if err != nil {
		return nil, &ValidationError{Result: pointage.ValidationResult{
			Reason:  pointage.ReasonBadCheckIn,
			Message: "check-in time must use the HH:MM format",
		}}
	}

	dto := &common.PointageDTO{
		ID:          form.ID,
		Employe:     form.EmployeID,
		Date:        common.NewDateOnly(date),
		HeureEntree: entree,
	}
	if form.CheckOut != "" {
		sortie, err := common.ParseTimeOnly(form.CheckOut)
		if err != nil {
			return nil, &ValidationError{Result: pointage.ValidationResult{
				Reason:  pointage.ReasonBadCheckOut,
				Message: "check-out time must use the HH:MM format",
			}}
		}
		dto.HeureSortie = &sortie
	}
	if form.Note != "" {
		dto.Remarque = utils.Ptr(form.Note)
	}
	return dto, nil
}

func (s *Store) publish(action, id string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.TopicPointages, events.Event{Action: action, ID: id})
}
