package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func strPtr(s string) *string { return &s }

func TestResolve_ReviewedWinsSlot(t *testing.T) {
	date := day("2025-06-02")
	reviewed := []ForemanReviewedTime{
		{
			ID: "r1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			WorkDate: date, ReviewedHours: 6.5,
		},
	}
	submitted := []SubmittedEntry{
		{
			ID: "e1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: date, Hours: 8.0,
		},
	}

	records := Resolve(reviewed, submitted)

	require.Len(t, records, 1)
	assert.Equal(t, 6.5, records[0].Hours)
	assert.Equal(t, SourceReviewed, records[0].Source)
	assert.True(t, records[0].IsReviewed)
	assert.True(t, records[0].Approved, "reviewed rows count as approved")
}

func TestResolve_BackLinkedSubmissionDropped(t *testing.T) {
	// The foreman moved Miguel's hours to a different activity; the original
	// submission is back-linked and must not survive as its own record.
	date := day("2025-06-02")
	reviewed := []ForemanReviewedTime{
		{
			ID: "r1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a2", ActivityName: "Stripping",
			WorkDate: date, ReviewedHours: 8.0,
			TimeEntryID: strPtr("e1"),
		},
	}
	submitted := []SubmittedEntry{
		{
			ID: "e1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: date, Hours: 8.0,
		},
	}

	records := Resolve(reviewed, submitted)

	require.Len(t, records, 1, "corrected hours must not double-count")
	assert.Equal(t, "a2", records[0].LaborActivityID)
	assert.Equal(t, SourceReviewed, records[0].Source)
}

func TestResolve_UnreviewedSubmissionPassesThrough(t *testing.T) {
	reviewed := []ForemanReviewedTime{
		{
			ID: "r1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			WorkDate: day("2025-06-02"), ReviewedHours: 6.5,
		},
	}
	submitted := []SubmittedEntry{
		{
			ID: "e2", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: day("2025-06-03"), Hours: 7.25,
			Approved: false,
		},
	}

	records := Resolve(reviewed, submitted)

	require.Len(t, records, 2)
	assert.Equal(t, SourceReviewed, records[0].Source)
	assert.Equal(t, SourceSubmitted, records[1].Source)
	assert.Equal(t, 7.25, records[1].Hours)
	assert.False(t, records[1].Approved, "submissions keep their own approval flag")
}

func TestResolve_OrderedByWorkerThenDate(t *testing.T) {
	submitted := []SubmittedEntry{
		{
			ID: "e1", UserID: "u2", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: day("2025-06-02"), Hours: 8,
		},
		{
			ID: "e2", UserID: "u1", UserName: "Dana Whitfield",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: day("2025-06-04"), Hours: 8,
		},
		{
			ID: "e3", UserID: "u1", UserName: "Dana Whitfield",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: day("2025-06-02"), Hours: 8,
		},
	}

	records := Resolve(nil, submitted)

	require.Len(t, records, 3)
	assert.Equal(t, "Dana Whitfield", records[0].UserName)
	assert.Equal(t, day("2025-06-02"), records[0].Date)
	assert.Equal(t, "Dana Whitfield", records[1].UserName)
	assert.Equal(t, day("2025-06-04"), records[1].Date)
	assert.Equal(t, "Miguel Torres", records[2].UserName)
}

func TestResolve_SameDayDifferentActivitiesKept(t *testing.T) {
	date := day("2025-06-02")
	submitted := []SubmittedEntry{
		{
			ID: "e1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			Date: date, Hours: 5,
		},
		{
			ID: "e2", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a2", ActivityName: "Stripping",
			Date: date, Hours: 3,
		},
	}

	records := Resolve(nil, submitted)

	require.Len(t, records, 2, "activities are separate ledger slots")
	assert.Equal(t, "Formwork", records[0].ActivityName)
	assert.Equal(t, "Stripping", records[1].ActivityName)
}

func TestResolveReviewedOnly_IgnoresSubmissions(t *testing.T) {
	reviewed := []ForemanReviewedTime{
		{
			ID: "r1", UserID: "u1", UserName: "Miguel Torres",
			JobID: "j1", JobCode: "JOB-100",
			LaborActivityID: "a1", ActivityName: "Formwork",
			WorkDate: day("2025-06-02"), ReviewedHours: 6.5,
			Notes: strPtr("left early"),
		},
	}

	records := ResolveReviewedOnly(reviewed)

	require.Len(t, records, 1)
	assert.Equal(t, 6.5, records[0].Hours)
	assert.True(t, records[0].IsReviewed)
	require.NotNil(t, records[0].Notes)
	assert.Equal(t, "left early", *records[0].Notes)
}

func TestResolveReviewedOnly_EmptyInput(t *testing.T) {
	records := ResolveReviewedOnly(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
