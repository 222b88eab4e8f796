package adminController

import (
	"ccw/database"
	"ccw/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func TestCsvField(t *testing.T) {
	assert.Equal(t, "Jane Doe", csvField("Jane Doe"))
	assert.Equal(t, `"Doe, Jane"`, csvField("Doe, Jane"))
	assert.Equal(t, `"Jane ""JD"" Doe"`, csvField(`Jane "JD" Doe`))
	assert.Equal(t, "\"line\nbreak\"", csvField("line\nbreak"))
	assert.Equal(t, "", csvField(""))
}

func TestGenerateUsersCSV_EscapesUserFields(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: `Doe, Jane "JD"`, Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	csv := generateUsersCSV(db, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Email,Role,Status,Email Verified,Auth Provider,Created At", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"Doe, Jane ""JD""",jane@example.com,`))

	// The quoted comma does not add a column
	assert.Equal(t, len(strings.Split(lines[0], ",")), countCSVFields(lines[1]))
}

func TestGenerateEnrollmentsCSV_EscapesCourseTitle(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW, Advanced", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		UserID: user.ID, CourseID: course.ID, EnrolledAt: time.Now(), GrantedBy: "PURCHASE",
	}).Error)

	csv := generateEnrollmentsCSV(db, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"CCW, Advanced"`)
	assert.Equal(t, len(strings.Split(lines[0], ",")), countCSVFields(lines[1]))
}

// countCSVFields counts top-level commas outside quoted sections
func countCSVFields(line string) int {
	fields := 1
	inQuotes := false
	for _, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields++
			}
		}
	}
	return fields
}
