package review

import "sort"

// Resolve merges foreman-reviewed rows with worker submissions into one
// effective record per (worker, job, activity, date). A reviewed row always
// wins its slot and counts as approved; submissions it back-links are dropped
// entirely so corrected hours are never double-counted. Submissions keep their
// own approved flag. Output is ordered by worker name, then date.
//
// Resolution is recomputed from its inputs on every call; nothing here touches
// storage.
func Resolve(reviewed []ForemanReviewedTime, submitted []SubmittedEntry) []EffectiveRecord {
	linkedEntries := make(map[string]struct{})
	for _, r := range reviewed {
		if r.TimeEntryID != nil {
			linkedEntries[*r.TimeEntryID] = struct{}{}
		}
	}

	type slot struct {
		userID     string
		jobID      string
		activityID string
		date       string
	}
	records := make(map[slot]EffectiveRecord)

	for _, r := range reviewed {
		k := slot{r.UserID, r.JobID, r.LaborActivityID, r.WorkDate.Format("2006-01-02")}
		records[k] = EffectiveRecord{
			UserID:          r.UserID,
			UserName:        r.UserName,
			JobID:           r.JobID,
			JobCode:         r.JobCode,
			LaborActivityID: r.LaborActivityID,
			ActivityName:    r.ActivityName,
			Date:            r.WorkDate,
			Hours:           r.ReviewedHours,
			Notes:           r.Notes,
			Source:          SourceReviewed,
			IsReviewed:      true,
			Approved:        true,
		}
	}

	for _, e := range submitted {
		if _, linked := linkedEntries[e.ID]; linked {
			continue
		}
		k := slot{e.UserID, e.JobID, e.LaborActivityID, e.Date.Format("2006-01-02")}
		if _, taken := records[k]; taken {
			continue
		}
		records[k] = EffectiveRecord{
			UserID:          e.UserID,
			UserName:        e.UserName,
			JobID:           e.JobID,
			JobCode:         e.JobCode,
			LaborActivityID: e.LaborActivityID,
			ActivityName:    e.ActivityName,
			Date:            e.Date,
			Hours:           e.Hours,
			Notes:           e.Notes,
			Source:          SourceSubmitted,
			IsReviewed:      false,
			Approved:        e.Approved,
		}
	}

	out := make([]EffectiveRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sortRecords(out)
	return out
}

// ResolveReviewedOnly maps strictly reviewed rows into effective records.
// Payroll extraction uses this mode: hours a foreman never reviewed do not
// reach payroll.
func ResolveReviewedOnly(reviewed []ForemanReviewedTime) []EffectiveRecord {
	out := make([]EffectiveRecord, 0, len(reviewed))
	for _, r := range reviewed {
		out = append(out, EffectiveRecord{
			UserID:          r.UserID,
			UserName:        r.UserName,
			JobID:           r.JobID,
			JobCode:         r.JobCode,
			LaborActivityID: r.LaborActivityID,
			ActivityName:    r.ActivityName,
			Date:            r.WorkDate,
			Hours:           r.ReviewedHours,
			Notes:           r.Notes,
			Source:          SourceReviewed,
			IsReviewed:      true,
			Approved:        true,
		})
	}
	sortRecords(out)
	return out
}

func sortRecords(records []EffectiveRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].UserName != records[j].UserName {
			return records[i].UserName < records[j].UserName
		}
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		if records[i].JobCode != records[j].JobCode {
			return records[i].JobCode < records[j].JobCode
		}
		return records[i].ActivityName < records[j].ActivityName
	})
}
