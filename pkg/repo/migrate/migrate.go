package migrate

import (
	"context"

	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo/model"
)

// oneDefaultIndex backs the single-default rule for saved views at the
// storage level. Both postgres and sqlite accept partial indexes.
const oneDefaultIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_view_one_default ON saved_view (user_id) WHERE is_default`

func Table(ctx context.Context, ds *db.Datastore) error {
	d := ds.DBWithContext(ctx)
	models := []any{
		&model.User{},
		&model.LabRecord{},
		&model.SavedView{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	if err := d.Exec(oneDefaultIndex).Error; err != nil {
		logger.Errorf(ctx, "create saved view default index err: %+v", err)
		return err
	}
	return nil
}
