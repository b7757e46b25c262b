package record_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/scienceol/labportal/internal/testutil"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/repo/record"
	"github.com/scienceol/labportal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecord(t *testing.T, store repo.RecordRepo, code string, status model.Status, qc int, receivedDaysAgo int) *model.LabRecord {
	t.Helper()
	r := &model.LabRecord{
		SampleCode: code,
		Submitter:  "Submitter " + code,
		Project:    "Project " + code,
		ReceivedAt: utils.Today().AddDate(0, 0, -receivedDaysAgo),
		Status:     status,
		QCScore:    qc,
	}
	if status.Terminal() {
		r.ProcessedAt = utils.Ptr(utils.Today())
	}
	require.NoError(t, store.SaveRecord(context.Background(), r))
	return r
}

func codes(rows []*model.LabRecord) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.SampleCode)
	}
	return out
}

func TestSaveRecordCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewDatastore(t)
	store := record.New(ds)

	r := seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 90, 1)
	assert.NotZero(t, r.ID)
	assert.False(t, r.UUID.IsNil())

	r.Notes = "re-run"
	r.QCScore = 0
	require.NoError(t, store.SaveRecord(ctx, r))

	got, err := store.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "re-run", got.Notes)
	assert.Equal(t, 0, got.QCScore)
	assert.Equal(t, r.ReceivedAt.Format("2006-01-02"), got.ReceivedAt.Format("2006-01-02"))
}

func TestSaveRecordRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewDatastore(t)
	store := record.New(ds)
	seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 90, 1)

	dup := &model.LabRecord{
		SampleCode: "LAB-2026-0001",
		Submitter:  "x",
		Project:    "y",
		ReceivedAt: utils.Today().AddDate(0, 0, 1),
		Status:     model.StatusCompleted,
		QCScore:    50,
	}
	err := store.SaveRecord(ctx, dup)
	var fe model.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, []string{"Lab record with this Sample code already exists."}, fe["sample_code"])
	assert.True(t, fe.Has("received_at"))
	assert.True(t, fe.Has("processed_at"))
	assert.Zero(t, dup.ID)

	var count int64
	require.NoError(t, ds.DBIns().Model(&model.LabRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveRecordTrimsSampleCode(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewDatastore(t)
	store := record.New(ds)
	seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 90, 1)

	padded := &model.LabRecord{
		SampleCode: " LAB-2026-0001 ",
		Submitter:  " B. Chen ",
		Project:    "Genomics",
		ReceivedAt: utils.Today(),
		Status:     model.StatusReceived,
		QCScore:    80,
	}
	err := store.SaveRecord(ctx, padded)
	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"Lab record with this Sample code already exists."}, fe["sample_code"])

	padded.SampleCode = " LAB-2026-0002\t"
	require.NoError(t, store.SaveRecord(ctx, padded))
	got, err := store.GetRecordBySampleCode(ctx, "LAB-2026-0002")
	require.NoError(t, err)
	assert.Equal(t, "B. Chen", got.Submitter)
}

func TestGetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := record.New(testutil.NewDatastore(t))

	_, err := store.GetRecord(ctx, 42)
	assert.ErrorIs(t, err, code.RecordNotFound)
	assert.ErrorIs(t, store.DeleteRecord(ctx, 42), code.RecordNotFound)

	r := seedRecord(t, store, "LAB-2026-0009", model.StatusReceived, 90, 1)
	require.NoError(t, store.DeleteRecord(ctx, r.ID))
	_, err = store.GetRecord(ctx, r.ID)
	assert.ErrorIs(t, err, code.RecordNotFound)
}

func TestListRecordsFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	store := record.New(testutil.NewDatastore(t))
	seedRecord(t, store, "LAB-2026-0001", model.StatusCompleted, 95, 3)
	seedRecord(t, store, "LAB-2026-0002", model.StatusCompleted, 70, 2)
	seedRecord(t, store, "LAB-2026-0003", model.StatusReceived, 99, 1)
	seedRecord(t, store, "LAB-2026-0004", model.StatusCompleted, 85, 0)

	score := 80
	page := &common.PageReq{Page: 1, PageSize: 25}
	resp, err := store.ListRecords(ctx, repo.RecordQuery{
		Status:     string(model.StatusCompleted),
		MinQCScore: &score,
		Ordering:   "-qc_score",
	}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Equal(t, []string{"LAB-2026-0001", "LAB-2026-0004"}, codes(resp.Data))

	resp, err = store.ListRecords(ctx, repo.RecordQuery{}, &common.PageReq{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAB-2026-0004", "LAB-2026-0003", "LAB-2026-0002", "LAB-2026-0001"}, codes(resp.Data))

	resp, err = store.ListRecords(ctx, repo.RecordQuery{Ordering: "sample_code"}, &common.PageReq{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAB-2026-0001", "LAB-2026-0002", "LAB-2026-0003", "LAB-2026-0004"}, codes(resp.Data))
}

func TestListRecordsSearch(t *testing.T) {
	ctx := context.Background()
	store := record.New(testutil.NewDatastore(t))
	a := seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 90, 1)
	b := seedRecord(t, store, "SEQ-2026-0002", model.StatusReceived, 90, 2)

	a.Notes = "needs 100% re-extraction"
	require.NoError(t, store.SaveRecord(ctx, a))
	b.Project = "Metagenomics"
	require.NoError(t, store.SaveRecord(ctx, b))

	cases := map[string][]string{
		"seq-2026":     {"SEQ-2026-0002"},
		"METAGENOMICS": {"SEQ-2026-0002"},
		"submitter":    {"LAB-2026-0001", "SEQ-2026-0002"},
		"100%":         {"LAB-2026-0001"},
		"0%":           {"LAB-2026-0001"},
		"_":            {},
		"nothing":      {},
	}
	for term, want := range cases {
		resp, err := store.ListRecords(ctx, repo.RecordQuery{Search: term, Ordering: "sample_code"}, &common.PageReq{Page: 1})
		require.NoError(t, err, term)
		assert.Equal(t, want, codes(resp.Data), term)
	}
}

func TestListRecordsPagination(t *testing.T) {
	ctx := context.Background()
	store := record.New(testutil.NewDatastore(t))
	for i := 1; i <= 30; i++ {
		seedRecord(t, store, fmt.Sprintf("LAB-2026-%04d", i), model.StatusReceived, 90, 1)
	}

	resp, err := store.ListRecords(ctx, repo.RecordQuery{Ordering: "sample_code"}, &common.PageReq{Page: 2, PageSize: 25})
	require.NoError(t, err)
	assert.EqualValues(t, 30, resp.Total)
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, 2, resp.NumPages())

	resp, err = store.ListRecords(ctx, repo.RecordQuery{Ordering: "sample_code"}, &common.PageReq{Page: common.ParsePage("last"), PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, "LAB-2026-0026", resp.Data[0].SampleCode)

	resp, err = store.ListRecords(ctx, repo.RecordQuery{}, &common.PageReq{Page: common.ParsePage("abc")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Data, common.DefaultPageSize)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewDatastore(t)
	store := record.New(ds)
	stats := record.NewStats(ds)

	avg, err := stats.AverageQCScore(ctx)
	require.NoError(t, err)
	assert.Nil(t, avg)

	seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 60, 10)
	seedRecord(t, store, "LAB-2026-0002", model.StatusInProgress, 90, 2)
	seedRecord(t, store, "LAB-2026-0003", model.StatusCompleted, 81, 40)

	counts, err := stats.CountByStatus(ctx)
	require.NoError(t, err)
	got := map[model.Status]int64{}
	for _, c := range counts {
		got[c.Status] = c.Total
	}
	assert.Equal(t, map[model.Status]int64{
		model.StatusReceived:   1,
		model.StatusInProgress: 1,
		model.StatusCompleted:  1,
	}, got)

	avg, err = stats.AverageQCScore(ctx)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 77.0, *avg, 0.001)

	overdue, err := stats.CountPendingReceivedBefore(ctx, utils.Today().AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.EqualValues(t, 1, overdue)

	low, err := stats.CountQCBelow(ctx, 70)
	require.NoError(t, err)
	assert.EqualValues(t, 1, low)

	dates, err := stats.ReceivedDatesSince(ctx, utils.Today().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Len(t, dates, 2)

	recent, err := stats.RecentRecords(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"LAB-2026-0002", "LAB-2026-0001"}, codes(recent))
}

func TestOrderScopeFallsBack(t *testing.T) {
	ctx := context.Background()
	store := record.New(testutil.NewDatastore(t))
	seedRecord(t, store, "LAB-2026-0001", model.StatusReceived, 90, 5)
	seedRecord(t, store, "LAB-2026-0002", model.StatusReceived, 90, 1)

	resp, err := store.ListRecords(ctx, repo.RecordQuery{Ordering: "notes; DROP TABLE lab_record"}, &common.PageReq{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAB-2026-0002", "LAB-2026-0001"}, codes(resp.Data))
}
