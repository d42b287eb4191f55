package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

// stubGenerator replays canned model outputs in order. Embeddings fail so
// the vector index path stays out of sqlite-backed tests.
type stubGenerator struct {
	outputs []string
	errs    []error
	calls   int
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.outputs) {
		return s.outputs[i], nil
	}
	return "", errors.New("no more canned outputs")
}

func (s *stubGenerator) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.Vector{}, errors.New("embeddings disabled in tests")
}

func setupWorkoutService(t *testing.T, gen utils.GeneratorClientInterface) (WorkoutServiceInterface, CreditServiceInterface) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&db_models.User{},
		&db_models.CreditTransaction{},
		&db_models.ActionLog{},
		&db_models.SavedWorkout{},
	))
	ledgerRepo := repositories.NewLedgerRepository(db)
	creditService := NewCreditService(db, ledgerRepo)
	workoutRepo := repositories.NewWorkoutRepository(db)
	return NewWorkoutService(workoutRepo, creditService, gen), creditService
}

const validWorkoutJSON = `{
	"name": "Strength Builder",
	"exercises": [
		{"name": "Squat", "sets": 5, "reps": "5", "rest": "120s"},
		{"name": "Bench Press", "sets": 5, "reps": "5", "rest": "120s"}
	],
	"duration": "45 min",
	"level": "intermediate",
	"category": "strength"
}`

func TestGenerateWorkoutChargesAndReturnsPlan(t *testing.T) {
	gen := &stubGenerator{outputs: []string{validWorkoutJSON}}
	svc, creditService := setupWorkoutService(t, gen)
	ctx := context.Background()

	workout, receipt, err := svc.Generate(ctx, "user1", request_models.GenerateWorkoutRequest{
		Goal:  "strength",
		Level: "intermediate",
	})
	require.NoError(t, err)
	require.Equal(t, "Strength Builder", workout.Name)
	require.Len(t, workout.Exercises, 2)
	require.Equal(t, 14, receipt.NewCredits)

	logs, err := creditService.ActionHistory(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, string(catalog.ActionGenerateWorkout), logs[0].Action)
}

func TestGenerateWorkoutRetriesOnFencedJSON(t *testing.T) {
	// First attempt is unparseable, second arrives fenced but valid.
	gen := &stubGenerator{outputs: []string{
		"sorry, I cannot do that",
		"```json\n" + validWorkoutJSON + "\n```",
	}}
	svc, _ := setupWorkoutService(t, gen)

	workout, _, err := svc.Generate(context.Background(), "user1", request_models.GenerateWorkoutRequest{Goal: "strength"})
	require.NoError(t, err)
	require.Equal(t, "Strength Builder", workout.Name)
	require.Equal(t, 2, gen.calls)
}

func TestGenerateWorkoutChargeStandsOnFailure(t *testing.T) {
	gen := &stubGenerator{outputs: []string{"bad", "bad", "bad"}}
	svc, creditService := setupWorkoutService(t, gen)
	ctx := context.Background()

	_, receipt, err := svc.Generate(ctx, "user1", request_models.GenerateWorkoutRequest{Goal: "strength"})
	require.Error(t, err)
	require.NotNil(t, receipt)
	require.Equal(t, 3, gen.calls)

	// The debit happened before generation and is not refunded.
	user, err := creditService.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 14, user.Credits)
}

func TestGenerateWorkoutInsufficientCreditsSkipsModel(t *testing.T) {
	gen := &stubGenerator{outputs: []string{validWorkoutJSON}}
	svc, creditService := setupWorkoutService(t, gen)
	ctx := context.Background()

	// Drain the balance first.
	_, err := creditService.Debit(ctx, "user1", db_models.DefaultStartingCredits, "DRAIN", "")
	require.NoError(t, err)

	_, _, err = svc.Generate(ctx, "user1", request_models.GenerateWorkoutRequest{Goal: "strength"})
	var insufficient *utils.InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	require.Zero(t, gen.calls)
}

func TestSaveWorkoutPersistsAndCharges(t *testing.T) {
	gen := &stubGenerator{}
	svc, creditService := setupWorkoutService(t, gen)
	ctx := context.Background()

	workout, receipt, err := svc.Save(ctx, "user1", request_models.SaveWorkoutRequest{
		Name:     "Leg Day",
		Level:    "beginner",
		Category: "strength",
		Exercises: []request_models.ExerciseInput{
			{Name: "Squat", Sets: 3, Reps: "10"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, workout.ID)
	require.Equal(t, 14, receipt.NewCredits)

	saved, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "Leg Day", saved[0].Name)

	user, err := creditService.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 14, user.Credits)
}
