package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

// dryRunDB builds statements through the postgres dialector without
// touching a live server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=hairdayy dbname=hairdayy",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// Postgres rejects FOR UPDATE combined with aggregates, so the conflict
// pre-check must lock plain rows instead of counting them.
func TestOverlapLockQueryLocksRowsWithoutAggregate(t *testing.T) {
	db := dryRunDB(t)

	day, err := timezone.ParseDate("2030-03-12")
	require.NoError(t, err)

	ap := &models.Appointment{
		BarberID:     1,
		Date:         day,
		StartMinutes: 540,
		EndMinutes:   570,
	}

	var ids []uint
	tx := overlapLockQuery(db, ap).Pluck("id", &ids)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "LIMIT")
	assert.NotContains(t, strings.ToLower(sql), "count(")
}

// The overlap constraint builds int4range over the minute columns, so the
// schema must declare them as integer rather than let a Go int widen to
// bigint.
func TestAppointmentMinuteColumnsMigrateAsInteger(t *testing.T) {
	db := dryRunDB(t)

	for _, model := range []any{
		&models.Appointment{},
		&models.WorkingHours{},
		&models.AvailabilityBlock{},
	} {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(model))

		for _, name := range []string{"StartMinutes", "EndMinutes"} {
			f := stmt.Schema.LookUpField(name)
			require.NotNil(t, f, "%s.%s", stmt.Schema.Name, name)
			assert.Equal(t, "integer", db.Dialector.DataTypeOf(f),
				"%s.%s", stmt.Schema.Name, name)
		}
	}
}
