package reports

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawalert/pawalert/internal/ai"
	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/repositories"
)

// completionTimeout bounds every collaborator call. A timeout is treated like
// any other collaborator failure: the report still goes through.
const completionTimeout = 30 * time.Second

// chatWindowSize is the number of prior transcript entries embedded into the
// chat prompt.
const chatWindowSize = 5

// ErrWrongKind is returned when a dispatch or notify operation targets a case
// of the other kind.
var ErrWrongKind = errors.NewSentinel("operation does not apply to this case kind")

// ValidationError reports a missing or invalid report field. It is local to
// one submission attempt; no case is created when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Completer is the contract the external analysis collaborator has to
// fulfill. It is assumed to be unreliable: every error is recoverable.
type Completer interface {
	Complete(ctx context.Context, req ai.Request) (string, error)
}

// Service owns the report lifecycle: submission, dispatch, notification, and
// the case-aware chat.
type Service struct {
	cases     *repositories.CaseRepository
	chat      *repositories.ChatRepository
	completer Completer
	logger    *slog.Logger
}

func NewService(
	cases *repositories.CaseRepository,
	chat *repositories.ChatRepository,
	completer Completer,
	logger *slog.Logger,
) *Service {
	return &Service{
		cases:     cases,
		chat:      chat,
		completer: completer,
		logger:    logger.With("source", "reports.Service"),
	}
}

// SubmitReportParams are the reporter-supplied fields of a new case.
type SubmitReportParams struct {
	Kind          models.CaseKind
	AnimalType    string
	Location      string
	Description   string
	AbuseCategory string
	ImageData     []byte
	ImageMIME     string
}

// SubmitReport validates the report, asks the collaborator for advisory text,
// and appends a new case to the session's store.
//
// A collaborator failure does not abort the submission: the case is created
// with a human-readable error line in place of the analysis. The report's
// existence is more important than the advisory text.
func (s *Service) SubmitReport(
	ctx context.Context,
	sessionID string,
	params SubmitReportParams,
) (*models.Case, error) {
	if err := validateSubmission(params); err != nil {
		return nil, err
	}

	var prompt string
	if params.Kind == models.CaseKindAbuse {
		prompt = abuseAnalysisPrompt(params.AnimalType, params.Location, params.AbuseCategory, params.Description)
	} else {
		prompt = injuryAnalysisPrompt(params.AnimalType, params.Location, params.Description)
	}

	analysis, err := s.complete(ctx, ai.Request{
		Prompt:    prompt,
		ImageData: params.ImageData,
		ImageMIME: params.ImageMIME,
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "analysis failed, registering case without it",
			errors.SlogError(err))
		analysis = fmt.Sprintf(
			"Automatic analysis is unavailable (%s). The report has been registered and will be reviewed manually.",
			err.Error())
	}

	attachmentID := ""
	if len(params.ImageData) > 0 {
		attachmentID = uuid.NewString()
	}

	c := &models.Case{ //nolint:exhaustruct // remaining fields are set on creation
		Kind:          params.Kind,
		AnimalType:    strings.TrimSpace(params.AnimalType),
		Location:      strings.TrimSpace(params.Location),
		Description:   strings.TrimSpace(params.Description),
		AbuseCategory: strings.TrimSpace(params.AbuseCategory),
		AttachmentID:  attachmentID,
		CreatedAt:     time.Now().UTC(),
		AnalysisText:  analysis,
	}
	if err = s.cases.Create(ctx, sessionID, c); err != nil {
		return nil, errors.Wrap(err, "create case")
	}

	return c, nil
}

// SelectFacility dispatches an injury case to the chosen facility. The status
// transition happens at most once; repeated calls leave the case dispatched
// with the originally selected facility and do not re-trigger the advisory
// text generation.
func (s *Service) SelectFacility(
	ctx context.Context,
	sessionID, caseID string,
	facilityIndex int64,
) (*models.Case, error) {
	c, err := s.cases.Get(ctx, sessionID, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "get case")
	}
	if c.Kind != models.CaseKindInjury {
		return nil, errors.Wrap(ErrWrongKind, "select facility", slog.String("case_id", caseID))
	}
	if facilityIndex < 0 || facilityIndex >= int64(len(c.Facilities)) {
		return nil, ValidationError{Field: "facility", Message: "unknown facility"}
	}

	advanced, err := s.cases.MarkDispatched(ctx, sessionID, caseID, facilityIndex)
	if err != nil {
		return nil, errors.Wrap(err, "mark dispatched")
	}
	if advanced {
		s.generateGuidance(ctx, sessionID, caseID,
			dispatchGuidancePrompt(c, c.Facilities[facilityIndex]))
	}

	if c, err = s.cases.Get(ctx, sessionID, caseID); err != nil {
		return nil, errors.Wrap(err, "reload case")
	}
	return c, nil
}

// NotifyAuthority forwards an abuse case to the authorities. The
// authority_notified flag flips false to true exactly once; the reference
// number generated at submission is never regenerated.
func (s *Service) NotifyAuthority(ctx context.Context, sessionID, caseID string) (*models.Case, error) {
	c, err := s.cases.Get(ctx, sessionID, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "get case")
	}
	if c.Kind != models.CaseKindAbuse {
		return nil, errors.Wrap(ErrWrongKind, "notify authority", slog.String("case_id", caseID))
	}

	advanced, err := s.cases.MarkNotified(ctx, sessionID, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "mark notified")
	}
	if advanced {
		s.generateGuidance(ctx, sessionID, caseID, notifyGuidancePrompt(c))
	}

	if c, err = s.cases.Get(ctx, sessionID, caseID); err != nil {
		return nil, errors.Wrap(err, "reload case")
	}
	return c, nil
}

// Chat appends the user message to the transcript, asks the collaborator for
// a reply built from a short window of prior messages plus the active case
// summary, and appends the reply. A collaborator failure is stored as the
// assistant turn so the transcript stays consistent.
func (s *Service) Chat(
	ctx context.Context,
	sessionID string,
	activeCase *models.Case,
	text string,
) ([]models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ValidationError{Field: "message", Message: "message must not be blank"}
	}

	if err := s.chat.Append(ctx, sessionID, models.ChatSpeakerUser, strings.TrimSpace(text)); err != nil {
		return nil, errors.Wrap(err, "append user message")
	}

	window, err := s.chat.Window(ctx, sessionID, chatWindowSize)
	if err != nil {
		return nil, errors.Wrap(err, "read transcript window")
	}

	reply, err := s.complete(ctx, ai.Request{ //nolint:exhaustruct // chat has no image payload
		Prompt: chatPrompt(window, activeCase),
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chat completion failed", errors.SlogError(err))
		reply = fmt.Sprintf("Sorry, the assistant is unavailable right now (%s). Please try again.", err.Error())
	}

	if err = s.chat.Append(ctx, sessionID, models.ChatSpeakerAssistant, reply); err != nil {
		return nil, errors.Wrap(err, "append assistant message")
	}

	transcript, err := s.chat.List(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "list transcript")
	}
	return transcript, nil
}

// Transcript returns the session's full stored transcript.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return s.chat.List(ctx, sessionID)
}

// Case returns one case of the session.
func (s *Service) Case(ctx context.Context, sessionID, caseID string) (*models.Case, error) {
	return s.cases.Get(ctx, sessionID, caseID)
}

// Dashboard is the status screen's read-only view of the case store,
// partitioned by kind.
type Dashboard struct {
	Injuries []models.Case
	Abuses   []models.Case
}

func (d Dashboard) InjuryCount() int {
	return len(d.Injuries)
}

func (d Dashboard) AbuseCount() int {
	return len(d.Abuses)
}

// DashboardFor partitions the session's cases by kind, preserving insertion
// order within each partition.
func (s *Service) DashboardFor(ctx context.Context, sessionID string) (*Dashboard, error) {
	cases, err := s.cases.List(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "list cases")
	}
	var dashboard Dashboard
	for _, c := range cases {
		if c.Kind == models.CaseKindAbuse {
			dashboard.Abuses = append(dashboard.Abuses, c)
		} else {
			dashboard.Injuries = append(dashboard.Injuries, c)
		}
	}
	return &dashboard, nil
}

// generateGuidance runs the one-time advisory call after a dispatch or
// notification. Failures degrade to an explanatory line in the guidance text.
func (s *Service) generateGuidance(ctx context.Context, sessionID, caseID, prompt string) {
	guidance, err := s.complete(ctx, ai.Request{Prompt: prompt}) //nolint:exhaustruct // no image payload
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "guidance generation failed", errors.SlogError(err))
		guidance = fmt.Sprintf("Guidance is unavailable right now (%s).", err.Error())
	}
	if err = s.cases.SetGuidance(ctx, sessionID, caseID, guidance); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to store guidance", errors.SlogError(err))
	}
}

func (s *Service) complete(ctx context.Context, req ai.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()
	return s.completer.Complete(ctx, req)
}

func validateSubmission(params SubmitReportParams) error {
	if params.Kind != models.CaseKindInjury && params.Kind != models.CaseKindAbuse {
		return ValidationError{Field: "kind", Message: "unknown report kind"}
	}
	if strings.TrimSpace(params.AnimalType) == "" {
		return ValidationError{Field: "animalType", Message: "animal type must not be blank"}
	}
	if strings.TrimSpace(params.Location) == "" {
		return ValidationError{Field: "location", Message: "location must not be blank"}
	}
	if strings.TrimSpace(params.Description) == "" {
		return ValidationError{Field: "description", Message: "description must not be blank"}
	}
	return nil
}
