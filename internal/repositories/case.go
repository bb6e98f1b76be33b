package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/sqlite"
)

// ErrCaseNotFound is returned when a case does not exist in the session.
var ErrCaseNotFound = errors.NewSentinel("case not found")

type CaseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewCaseRepository(db *sqlite.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		db:     db,
		logger: logger.With("source", "CaseRepository"),
	}
}

const caseColumns = `id, kind, animal_type, location, description, attachment_id, created_at,
	analysis_text, status, selected_facility, guidance_text, abuse_category, reference_number, authority_notified`

// Create allocates the type-prefixed case ID from the per-session per-kind
// sequence and inserts the case. The ID, status, and, for abuse cases, the
// reference number are set on c before the insert.
//
// IDs are never reused within a session because cases are never deleted and
// the sequence is derived from the case count inside the write transaction.
func (r *CaseRepository) Create(ctx context.Context, sessionID string, c *models.Case) error {
	tx, err := r.db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction",
				errors.SlogError(rollbackErr))
		}
	}()

	var seq int64
	stmt := `SELECT COUNT(*) + 1 FROM cases WHERE session_id = ? AND kind = ?`
	if err = tx.GetContext(ctx, &seq, stmt, sessionID, c.Kind); err != nil {
		return errors.Wrap(err, "allocate case sequence")
	}

	c.ID = models.FormatCaseID(c.Kind, seq)
	c.Status = models.CaseStatusRegistered
	if c.Kind == models.CaseKindAbuse {
		c.ReferenceNumber = models.FormatReferenceNumber(c.CreatedAt.Year(), seq)
	}

	stmt = `INSERT INTO cases (session_id, id, seq, kind, animal_type, location, description, attachment_id,
		created_at, analysis_text, status, abuse_category, reference_number)
	VALUES (@session_id, @id, @seq, @kind, @animal_type, @location, @description, @attachment_id,
		@created_at, @analysis_text, @status, @abuse_category, @reference_number)`
	params := []any{
		sql.Named("session_id", sessionID),
		sql.Named("id", c.ID),
		sql.Named("seq", seq),
		sql.Named("kind", c.Kind),
		sql.Named("animal_type", c.AnimalType),
		sql.Named("location", c.Location),
		sql.Named("description", c.Description),
		sql.Named("attachment_id", c.AttachmentID),
		sql.Named("created_at", c.CreatedAt),
		sql.Named("analysis_text", c.AnalysisText),
		sql.Named("status", c.Status),
		sql.Named("abuse_category", c.AbuseCategory),
		sql.Named("reference_number", c.ReferenceNumber),
	}
	if _, err = tx.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "insert case", slog.String("case_id", c.ID))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	attachFacilities(c)

	return nil
}

// Get returns the case with the given ID within the session.
func (r *CaseRepository) Get(ctx context.Context, sessionID, caseID string) (*models.Case, error) {
	var c models.Case
	stmt := `SELECT ` + caseColumns + ` FROM cases WHERE session_id = ? AND id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &c, stmt, sessionID, caseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrCaseNotFound, "get case", slog.String("case_id", caseID))
		}
		return nil, errors.Wrap(err, "get case", slog.String("case_id", caseID))
	}
	attachFacilities(&c)
	return &c, nil
}

// List returns the session's cases in insertion order.
func (r *CaseRepository) List(ctx context.Context, sessionID string) ([]models.Case, error) {
	var cases []models.Case
	stmt := `SELECT ` + caseColumns + ` FROM cases WHERE session_id = ? ORDER BY rowid`
	if err := r.db.ReadOnly.SelectContext(ctx, &cases, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "list cases")
	}
	for i := range cases {
		attachFacilities(&cases[i])
	}
	return cases, nil
}

// MarkDispatched transitions an injury case from registered to dispatched and
// stores the selected facility. It reports whether the transition happened so
// the caller can gate the one-time advisory text generation. A repeated call
// is a no-op: the status guard prevents regressions and duplicate dispatches.
func (r *CaseRepository) MarkDispatched(
	ctx context.Context,
	sessionID, caseID string,
	facilityIndex int64,
) (bool, error) {
	stmt := `UPDATE cases
	SET status = @dispatched, selected_facility = @facility_index
	WHERE session_id = @session_id AND id = @id AND kind = @kind AND status = @registered`
	params := []any{
		sql.Named("dispatched", models.CaseStatusDispatched),
		sql.Named("facility_index", facilityIndex),
		sql.Named("session_id", sessionID),
		sql.Named("id", caseID),
		sql.Named("kind", models.CaseKindInjury),
		sql.Named("registered", models.CaseStatusRegistered),
	}
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, params...)
	if err != nil {
		return false, errors.Wrap(err, "mark case dispatched", slog.String("case_id", caseID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}

// MarkNotified flips authority_notified exactly once and advances an abuse
// case to notified. The reference number is left untouched. Reports whether
// the transition happened.
func (r *CaseRepository) MarkNotified(ctx context.Context, sessionID, caseID string) (bool, error) {
	stmt := `UPDATE cases
	SET status = @notified, authority_notified = 1
	WHERE session_id = @session_id AND id = @id AND kind = @kind AND authority_notified = 0`
	params := []any{
		sql.Named("notified", models.CaseStatusNotified),
		sql.Named("session_id", sessionID),
		sql.Named("id", caseID),
		sql.Named("kind", models.CaseKindAbuse),
	}
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, params...)
	if err != nil {
		return false, errors.Wrap(err, "mark case notified", slog.String("case_id", caseID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}

// SetGuidance stores the follow-up advisory text produced after a dispatch or
// notification.
func (r *CaseRepository) SetGuidance(ctx context.Context, sessionID, caseID, guidance string) error {
	stmt := `UPDATE cases SET guidance_text = ? WHERE session_id = ? AND id = ?`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, guidance, sessionID, caseID); err != nil {
		return errors.Wrap(err, "set guidance text", slog.String("case_id", caseID))
	}
	return nil
}

// CountByKind returns the number of cases of the given kind in the session.
func (r *CaseRepository) CountByKind(ctx context.Context, sessionID string, kind models.CaseKind) (int64, error) {
	var count int64
	stmt := `SELECT COUNT(*) FROM cases WHERE session_id = ? AND kind = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &count, stmt, sessionID, kind); err != nil {
		return 0, errors.Wrap(err, "count cases")
	}
	return count, nil
}

// attachFacilities fills in the fixed facility catalog for injury cases. The
// catalog is the same for every case regardless of location.
func attachFacilities(c *models.Case) {
	if c.Kind == models.CaseKindInjury {
		c.Facilities = models.InjuryFacilities
	}
}
