package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

func TestSearchJobs_NoFilters_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	old := mkJob(t, db, w.EmployerID, w.CityID, "Old", base)
	newer := mkJob(t, db, w.EmployerID, w.CityID, "New", base.Add(24*time.Hour))

	rows, err := SearchJobs(ctx, db, SearchFilters{}, 0, 0)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(rows) != 2 || rows[0].JobID != newer || rows[1].JobID != old {
		t.Fatalf("unexpected order: %+v", rows)
	}
	if rows[0].CompanyName != "Acme Ltd" || rows[0].CityName != "Athens" || rows[0].CountryName != "Greece" {
		t.Fatalf("missing denormalized names: %+v", rows[0])
	}
}

func TestSearchJobs_TieBreakByJobIDDesc(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	j1 := mkJob(t, db, w.EmployerID, w.CityID, "A", ts)
	j2 := mkJob(t, db, w.EmployerID, w.CityID, "B", ts)
	j3 := mkJob(t, db, w.EmployerID, w.CityID, "C", ts)

	rows, err := SearchJobs(ctx, db, SearchFilters{}, 0, 0)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	want := []int64{j3, j2, j1}
	for i, id := range want {
		if rows[i].JobID != id {
			t.Fatalf("row %d = job %d, want %d", i, rows[i].JobID, id)
		}
	}
}

func TestSearchJobs_Pagination_NoOverlapNoGap(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	ts := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		mkJob(t, db, w.EmployerID, w.CityID, "J", ts) // identical PostDate on purpose
	}

	seen := map[int64]bool{}
	for page := 0; page < 3; page++ {
		rows, err := SearchJobs(ctx, db, SearchFilters{}, 3, page*3)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		for _, r := range rows {
			if seen[r.JobID] {
				t.Fatalf("job %d appeared on two pages", r.JobID)
			}
			seen[r.JobID] = true
		}
	}
	if len(seen) != 7 {
		t.Fatalf("pages covered %d jobs, want 7", len(seen))
	}
}

func TestSearchJobs_Filters(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	patras := mkCity(t, db, "Patras", w.CountryID)
	globex := mkCompany(t, db, "Globex")
	employer2 := mkEmployer(t, db, "+300000000010", patras, globex)

	ts := time.Now().UTC()
	athensJob := mkJob(t, db, w.EmployerID, w.CityID, "Athens role", ts)
	patrasJob := mkJob(t, db, employer2, patras, "Patras role", ts)

	// Salary bounds live on the posting, not the fixture default: set them.
	db.Model(&domain.JobPosting{}).Where("JobId = ?", athensJob).
		Updates(map[string]any{"MinSalary": 30000.0, "MaxSalary": 45000.0})
	db.Model(&domain.JobPosting{}).Where("JobId = ?", patrasJob).
		Updates(map[string]any{"MinSalary": 20000.0, "MaxSalary": 28000.0, "WorkType": "Part-time"})

	cases := []struct {
		name string
		f    SearchFilters
		want []int64
	}{
		{"city", SearchFilters{CityID: i64(w.CityID)}, []int64{athensJob}},
		{"company", SearchFilters{CompanyID: i64(globex)}, []int64{patrasJob}},
		{"min salary", SearchFilters{MinSalary: f64(25000)}, []int64{athensJob}},
		{"max salary", SearchFilters{MaxSalary: f64(30000)}, []int64{patrasJob}},
		{"work type", SearchFilters{WorkType: str("Part-time")}, []int64{patrasJob}},
		{"no match", SearchFilters{CityID: i64(w.CityID), WorkType: str("Part-time")}, nil},
	}
	for _, tc := range cases {
		rows, err := SearchJobs(ctx, db, tc.f, 0, 0)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(rows) != len(tc.want) {
			t.Fatalf("%s: got %d rows, want %d", tc.name, len(rows), len(tc.want))
		}
		for i := range tc.want {
			if rows[i].JobID != tc.want[i] {
				t.Fatalf("%s: row %d = %d, want %d", tc.name, i, rows[i].JobID, tc.want[i])
			}
		}

		total, err := CountJobs(ctx, db, tc.f)
		if err != nil {
			t.Fatalf("%s count: %v", tc.name, err)
		}
		if total != int64(len(tc.want)) {
			t.Fatalf("%s: count %d diverges from search %d", tc.name, total, len(tc.want))
		}
	}
}

func TestSearchJobs_ExcludesDislikedAndInactive(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	ts := time.Now().UTC()
	liked := mkJob(t, db, w.EmployerID, w.CityID, "Kept", ts)
	disliked := mkJob(t, db, w.EmployerID, w.CityID, "Hidden", ts)
	inactive := mkJob(t, db, w.EmployerID, w.CityID, "Closed", ts)
	db.Model(&domain.JobPosting{}).Where("JobId = ?", inactive).Update("IsActive", false)

	if err := AddDislike(ctx, db, w.EmployeeID, disliked); err != nil {
		t.Fatalf("AddDislike: %v", err)
	}

	rows, err := SearchJobs(ctx, db, SearchFilters{ExcludeDislikedFor: i64(w.EmployeeID)}, 0, 0)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(rows) != 1 || rows[0].JobID != liked {
		t.Fatalf("expected only the kept job, got %+v", rows)
	}

	// Another employee still sees the disliked job.
	other := mkEmployee(t, db, "+300000000011", w.CityID)
	rows, err = SearchJobs(ctx, db, SearchFilters{ExcludeDislikedFor: i64(other)}, 0, 0)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("other employee should see 2 jobs, got %d", len(rows))
	}
}

func TestSearchJobs_LiveCounts(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	e2 := mkEmployee(t, db, "+300000000012", w.CityID)
	jobID := mkJob(t, db, w.EmployerID, w.CityID, "Counted", time.Now().UTC())
	mkApplication(t, db, w.EmployeeID, jobID)
	mkApplication(t, db, e2, jobID)
	if err := AddShortlist(ctx, db, e2, jobID); err != nil {
		t.Fatalf("AddShortlist: %v", err)
	}

	rows, err := SearchJobs(ctx, db, SearchFilters{}, 0, 0)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	r := rows[0]
	if r.ApplyCount != 2 || r.ShortlistCount != 1 || r.DislikeCount != 0 {
		t.Fatalf("counts apply=%d shortlist=%d dislike=%d", r.ApplyCount, r.ShortlistCount, r.DislikeCount)
	}
}

func TestCreateJob_SetsDefaults(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	j := domain.JobPosting{EmployerID: w.EmployerID, Title: "X", WorkType: "Full-time", CityID: w.CityID}
	if err := CreateJob(ctx, db, &j); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if j.JobID == 0 || !j.IsActive || j.PostDate.IsZero() {
		t.Fatalf("defaults not applied: %+v", j)
	}

	got, err := GetJob(ctx, db, j.JobID)
	if err != nil || got.Title != "X" {
		t.Fatalf("GetJob: %+v err=%v", got, err)
	}
	if _, err := GetJob(ctx, db, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecommendedJobs_SameIndustryRankedByApplications(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	// Second company in the same industry, third in a different one.
	peer := mkCompany(t, db, "Globex")
	mkFocus(t, db, peer, w.IndustryID)
	retail := mkIndustry(t, db, "Retail")
	outsider := mkCompany(t, db, "ShopCo")
	mkFocus(t, db, outsider, retail)

	peerEmployer := mkEmployer(t, db, "+300000000020", w.CityID, peer)
	retailEmployer := mkEmployer(t, db, "+300000000021", w.CityID, outsider)

	ts := time.Now().UTC()
	anchor := mkJob(t, db, w.EmployerID, w.CityID, "Anchor", ts)
	popular := mkJob(t, db, peerEmployer, w.CityID, "Popular", ts)
	quiet := mkJob(t, db, peerEmployer, w.CityID, "Quiet", ts)
	applied := mkJob(t, db, w.EmployerID, w.CityID, "Applied already", ts)
	offIndustry := mkJob(t, db, retailEmployer, w.CityID, "Retail job", ts)

	// Two applicants on "popular", one on "quiet".
	e2 := mkEmployee(t, db, "+300000000022", w.CityID)
	e3 := mkEmployee(t, db, "+300000000023", w.CityID)
	mkApplication(t, db, e2, popular)
	mkApplication(t, db, e3, popular)
	mkApplication(t, db, e2, quiet)
	mkApplication(t, db, w.EmployeeID, applied)

	rows, err := RecommendedJobs(ctx, db, anchor, w.EmployeeID)
	if err != nil {
		t.Fatalf("RecommendedJobs: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(rows))
	}
	if rows[0].JobID != popular {
		t.Fatalf("top recommendation = %d, want %d", rows[0].JobID, popular)
	}
	if rows[0].ApplyCount != 2 || rows[1].ApplyCount > rows[0].ApplyCount {
		t.Fatalf("apply counts not descending: %+v", rows)
	}
	for _, r := range rows {
		if r.JobID == applied {
			t.Fatalf("already-applied job must be excluded")
		}
		if r.JobID == offIndustry {
			t.Fatalf("other-industry job must be excluded")
		}
	}
}

func TestShortlistedJobs(t *testing.T) {
	db := newTestDB(t)
	w := seedWorld(t, db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j1 := mkJob(t, db, w.EmployerID, w.CityID, "Old", base)
	j2 := mkJob(t, db, w.EmployerID, w.CityID, "New", base.Add(time.Hour))
	mkJob(t, db, w.EmployerID, w.CityID, "Not shortlisted", base)

	if err := AddShortlist(ctx, db, w.EmployeeID, j1); err != nil {
		t.Fatalf("AddShortlist: %v", err)
	}
	if err := AddShortlist(ctx, db, w.EmployeeID, j2); err != nil {
		t.Fatalf("AddShortlist: %v", err)
	}

	rows, err := ShortlistedJobs(ctx, db, w.EmployeeID)
	if err != nil {
		t.Fatalf("ShortlistedJobs: %v", err)
	}
	if len(rows) != 2 || rows[0].JobID != j2 || rows[1].JobID != j1 {
		t.Fatalf("unexpected shortlist: %+v", rows)
	}
}
