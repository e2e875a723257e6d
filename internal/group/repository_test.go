package group

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=quiz dbname=quiz sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestBumpViolationSQL(t *testing.T) {
	db := dryRunDB(t)
	id := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return bumpViolation(tx, id, 2) })

	assert.Contains(t, sql, `"violation_count"=violation_count + 1`)
	assert.Contains(t, sql, `"violated_multiple_times"=violated_multiple_times OR violation_count + 1 > 2`)
	assert.Contains(t, sql, `"quiz_is_locked"=true`)
	assert.Contains(t, sql, "WHERE id = '"+id.String()+"'")
}

func TestFinishAttemptSQL(t *testing.T) {
	db := dryRunDB(t)
	id, quizID := uuid.New(), uuid.New()
	score := 7
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return finishAttempt(tx, id, QuizState{
			Score:                &score,
			CurrentQuestionIndex: 15,
			QuizID:               &quizID,
			FinishedAt:           &at,
		})
	})

	assert.Contains(t, sql, "quiz_is_finished = false")
	assert.Contains(t, sql, `"quiz_score"=7`)
	assert.Contains(t, sql, `"quiz_is_finished"=true`)
	assert.Contains(t, sql, `"quiz_current_question_index"=15`)
	assert.Contains(t, sql, quizID.String())
	assert.NotContains(t, sql, "violation_count")
	assert.NotContains(t, sql, "quiz_is_locked")
}

func TestViolationLogsInInsertionOrder(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return insertionOrder(tx).Find(&[]ViolationLog{})
	})
	assert.Contains(t, sql, "ORDER BY seq ASC")

	s, err := schema.Parse(&ViolationLog{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	seq := s.LookUpField("Seq")
	require.NotNil(t, seq)
	assert.True(t, seq.AutoIncrement)
	assert.Equal(t, "seq", seq.DBName)
}
