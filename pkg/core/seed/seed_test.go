package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/scienceol/labportal/internal/testutil"
	lImpl "github.com/scienceol/labportal/pkg/core/login/login"
	"github.com/scienceol/labportal/pkg/core/seed"
	"github.com/scienceol/labportal/pkg/repo/account"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/repo/record"
	"github.com/scienceol/labportal/pkg/repo/savedview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewDatastore(t)
	accounts := account.New(ds)
	records := record.New(ds)
	views := savedview.New(ds)
	s := seed.New(ds, lImpl.New(accounts, nil, lImpl.Config{}), records, views)

	today := testutil.Date(2026, time.March, 20)
	require.NoError(t, s.Run(ctx, today))
	require.NoError(t, s.Run(ctx, today))

	user, err := accounts.GetUserByUsername(ctx, seed.DemoUsername)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	var total int64
	require.NoError(t, ds.DBIns().Model(&model.LabRecord{}).Count(&total).Error)
	assert.EqualValues(t, 3, total)

	got, err := records.GetRecordBySampleCode(ctx, "LAB-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, today.AddDate(0, 0, -10), got.ReceivedAt.UTC())
	require.NotNil(t, got.CreatedByID)
	assert.Equal(t, user.ID, *got.CreatedByID)

	list, err := views.ListViews(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, seed.DemoViewName, list[0].Name)
	assert.True(t, list[0].IsDefault)
	require.NotNil(t, list[0].MinQCScore)
	assert.Equal(t, 80, *list[0].MinQCScore)
}
