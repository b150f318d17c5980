package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

func TestParseTimetableSharedTime(t *testing.T) {
	slots, err := ParseTimetable("9am Mon, Tue, Thu")
	require.NoError(t, err)
	assert.Equal(t, []Timeslot{
		{Time: "9am", Day: "Mon", Weeks: weeksAll},
		{Time: "9am", Day: "Tue", Weeks: weeksAll},
		{Time: "9am", Day: "Thu", Weeks: weeksAll},
	}, slots)
}

func TestParseTimetableWeekQualifierStaysLocal(t *testing.T) {
	slots, err := ParseTimetable("10am Mon (even weeks), Tue, Thu")
	require.NoError(t, err)
	assert.Equal(t, []Timeslot{
		{Time: "10am", Day: "Mon", Weeks: weeksEven},
		{Time: "10am", Day: "Tue", Weeks: weeksAll},
		{Time: "10am", Day: "Thu", Weeks: weeksAll},
	}, slots)
}

func TestParseTimetableMultipleTimes(t *testing.T) {
	slots, err := ParseTimetable("12noon Mon, Wed, 2pm Fri (odd weeks)")
	require.NoError(t, err)
	assert.Equal(t, []Timeslot{
		{Time: "12noon", Day: "Mon", Weeks: weeksAll},
		{Time: "12noon", Day: "Wed", Weeks: weeksAll},
		{Time: "2pm", Day: "Fri", Weeks: weeksOdd},
	}, slots)
}

func TestParseTimetableEmpty(t *testing.T) {
	slots, err := ParseTimetable("  ")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestParseTimetableDayWithoutTime(t *testing.T) {
	_, err := ParseTimetable("Mon, Tue")
	require.Error(t, err)
}

func TestTimetableClashAllWeeks(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT3501", Timetable: "9am Mon, Tue"},
		models.Module{Code: "MT3502", Timetable: "9am Mon, Wed"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 1", models.SemesterOne, "MT3501"),
		choiceOf("Year 1", models.SemesterOne, "MT3502"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Clash for Year 1 S1 between modules MT3501 and MT3502 at 9am Mon"},
		findings)
}

func TestTimetableOddAndEvenWeeksCoexist(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT3501", Timetable: "10am Mon (odd weeks)"},
		models.Module{Code: "MT3502", Timetable: "10am Mon (even weeks)"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 1", models.SemesterOne, "MT3501"),
		choiceOf("Year 1", models.SemesterOne, "MT3502"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestTimetableQualifiedSlotClashesWithAllWeeks(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT3501", Timetable: "10am Mon (odd weeks)"},
		models.Module{Code: "MT3502", Timetable: "10am Mon"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 1", models.SemesterOne, "MT3501"),
		choiceOf("Year 1", models.SemesterOne, "MT3502"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Clash for Year 1 S1 between modules MT3501 and MT3502 at 10am Mon (odd weeks)"},
		findings)
}

func TestTimetableClashMergesRepeatedSlots(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT3501", Timetable: "9am Mon, Thu"},
		models.Module{Code: "MT3502", Timetable: "9am Mon, Thu"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 1", models.SemesterOne, "MT3501"),
		choiceOf("Year 1", models.SemesterOne, "MT3502"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t,
		"Clash for Year 1 S1 between modules MT3501 and MT3502 at 9am Mon and 9am Thu",
		findings[0])
}

func TestTimetableNoCrossSemesterClash(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT3501", Timetable: "9am Mon"},
		models.Module{Code: "MT3504", Semester: models.SemesterTwo, Timetable: "9am Mon"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 1", models.SemesterOne, "MT3501"),
		choiceOf("Year 1", models.SemesterTwo, "MT3504"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestTimetableOverrideApplied(t *testing.T) {
	cat := buildCatalogue(t,
		models.Module{Code: "MT4112", Timetable: "see school timetable"},
		models.Module{Code: "MT4113", Timetable: "10am Wed"},
	)
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil,
		choiceOf("Year 2", models.SemesterOne, "MT4112"),
		choiceOf("Year 2", models.SemesterOne, "MT4113"),
	)
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Clash for Year 2 S1 between modules MT4112 and MT4113 at 10am Wed (odd weeks)"},
		findings)
}

func TestTimetableUnparseableEntryIsFatal(t *testing.T) {
	cat := buildCatalogue(t, models.Module{Code: "MT3501", Timetable: "Mon"})
	svc := NewTimetableService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT3501"))
	_, err := svc.Check(student)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCatalogue))
}
