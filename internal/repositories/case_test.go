package repositories_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/repositories"
	"github.com/pawalert/pawalert/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newInjuryCase() *models.Case {
	return &models.Case{ //nolint:exhaustruct // Create fills in the rest
		Kind:         models.CaseKindInjury,
		AnimalType:   "Dog",
		Location:     "MG Road, Bengaluru",
		Description:  "Limping dog near the bus stop",
		CreatedAt:    time.Now().UTC(),
		AnalysisText: "Likely fracture, needs transport.",
	}
}

func newAbuseCase() *models.Case {
	return &models.Case{ //nolint:exhaustruct // Create fills in the rest
		Kind:          models.CaseKindAbuse,
		AnimalType:    "Cat",
		Location:      "Indiranagar, Bengaluru",
		Description:   "Neighbour keeps the cat chained without food",
		CreatedAt:     time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
		AnalysisText:  "Possible offence under Section 11, PCA Act.",
		AbuseCategory: "Neglect",
	}
}

func TestCaseRepository_Create(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	t.Run("injury IDs are sequential within a session", func(t *testing.T) {
		first := newInjuryCase()
		require.NoError(t, repo.Create(ctx, "session-a", first))
		require.Equal(t, "INJ1001", first.ID)
		require.Equal(t, models.CaseStatusRegistered, first.Status)
		require.Empty(t, first.ReferenceNumber)
		require.Len(t, first.Facilities, 3)

		second := newInjuryCase()
		require.NoError(t, repo.Create(ctx, "session-a", second))
		require.Equal(t, "INJ1002", second.ID)
	})

	t.Run("abuse cases get a reference number", func(t *testing.T) {
		c := newAbuseCase()
		require.NoError(t, repo.Create(ctx, "session-a", c))
		require.Equal(t, "ABU2001", c.ID)
		require.Equal(t, "FIR/2025/ANM/5001", c.ReferenceNumber)
		require.Empty(t, c.Facilities)
	})

	t.Run("kinds sequence independently", func(t *testing.T) {
		c := newAbuseCase()
		require.NoError(t, repo.Create(ctx, "session-a", c))
		require.Equal(t, "ABU2002", c.ID)
		require.Equal(t, "FIR/2025/ANM/5002", c.ReferenceNumber)
	})

	t.Run("sessions sequence independently", func(t *testing.T) {
		c := newInjuryCase()
		require.NoError(t, repo.Create(ctx, "session-b", c))
		require.Equal(t, "INJ1001", c.ID)
	})
}

func TestCaseRepository_Get(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	created := newInjuryCase()
	require.NoError(t, repo.Create(ctx, "session-a", created))

	c, err := repo.Get(ctx, "session-a", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, c.ID)
	require.Equal(t, created.Description, c.Description)
	require.Equal(t, models.InjuryFacilities, c.Facilities)

	t.Run("unknown case", func(t *testing.T) {
		_, err := repo.Get(ctx, "session-a", "INJ9999")
		require.ErrorIs(t, err, repositories.ErrCaseNotFound)
	})

	t.Run("case from another session is not visible", func(t *testing.T) {
		_, err := repo.Get(ctx, "session-b", created.ID)
		require.ErrorIs(t, err, repositories.ErrCaseNotFound)
	})
}

func TestCaseRepository_List(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "session-a", newInjuryCase()))
	require.NoError(t, repo.Create(ctx, "session-a", newAbuseCase()))
	require.NoError(t, repo.Create(ctx, "session-a", newInjuryCase()))

	cases, err := repo.List(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, cases, 3)
	require.Equal(t, []string{"INJ1001", "ABU2001", "INJ1002"},
		[]string{cases[0].ID, cases[1].ID, cases[2].ID}, "insertion order")

	count, err := repo.CountByKind(ctx, "session-a", models.CaseKindInjury)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.CountByKind(ctx, "session-a", models.CaseKindAbuse)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestCaseRepository_MarkDispatched(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	injury := newInjuryCase()
	require.NoError(t, repo.Create(ctx, "session-a", injury))
	abuse := newAbuseCase()
	require.NoError(t, repo.Create(ctx, "session-a", abuse))

	advanced, err := repo.MarkDispatched(ctx, "session-a", injury.ID, 1)
	require.NoError(t, err)
	require.True(t, advanced, "first dispatch advances the case")

	c, err := repo.Get(ctx, "session-a", injury.ID)
	require.NoError(t, err)
	require.Equal(t, models.CaseStatusDispatched, c.Status)
	require.NotNil(t, c.SelectedFacility)
	require.Equal(t, int64(1), *c.SelectedFacility)

	t.Run("repeated dispatch is a no-op", func(t *testing.T) {
		advanced, err := repo.MarkDispatched(ctx, "session-a", injury.ID, 2)
		require.NoError(t, err)
		require.False(t, advanced)

		c, err := repo.Get(ctx, "session-a", injury.ID)
		require.NoError(t, err)
		require.Equal(t, models.CaseStatusDispatched, c.Status)
		require.Equal(t, int64(1), *c.SelectedFacility, "facility selection sticks")
	})

	t.Run("abuse cases cannot be dispatched", func(t *testing.T) {
		advanced, err := repo.MarkDispatched(ctx, "session-a", abuse.ID, 0)
		require.NoError(t, err)
		require.False(t, advanced)
	})
}

func TestCaseRepository_MarkNotified(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	injury := newInjuryCase()
	require.NoError(t, repo.Create(ctx, "session-a", injury))
	abuse := newAbuseCase()
	require.NoError(t, repo.Create(ctx, "session-a", abuse))
	reference := abuse.ReferenceNumber

	advanced, err := repo.MarkNotified(ctx, "session-a", abuse.ID)
	require.NoError(t, err)
	require.True(t, advanced, "first notification advances the case")

	c, err := repo.Get(ctx, "session-a", abuse.ID)
	require.NoError(t, err)
	require.Equal(t, models.CaseStatusNotified, c.Status)
	require.True(t, c.AuthorityNotified)
	require.Equal(t, reference, c.ReferenceNumber, "reference number does not change")

	t.Run("repeated notification is a no-op", func(t *testing.T) {
		advanced, err := repo.MarkNotified(ctx, "session-a", abuse.ID)
		require.NoError(t, err)
		require.False(t, advanced)

		c, err := repo.Get(ctx, "session-a", abuse.ID)
		require.NoError(t, err)
		require.Equal(t, reference, c.ReferenceNumber)
	})

	t.Run("injury cases cannot be notified", func(t *testing.T) {
		advanced, err := repo.MarkNotified(ctx, "session-a", injury.ID)
		require.NoError(t, err)
		require.False(t, advanced)
	})
}

func TestCaseRepository_SetGuidance(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	c := newInjuryCase()
	require.NoError(t, repo.Create(ctx, "session-a", c))
	require.NoError(t, repo.SetGuidance(ctx, "session-a", c.ID, "Keep the animal warm."))

	got, err := repo.Get(ctx, "session-a", c.ID)
	require.NoError(t, err)
	require.Equal(t, "Keep the animal warm.", got.GuidanceText)
}

func TestCaseRepository_Create_ManyCases(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(db, logger)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		c := newInjuryCase()
		require.NoError(t, repo.Create(ctx, "session-a", c))
		require.Equal(t, fmt.Sprintf("INJ%d", 1000+i), c.ID)
	}
}
