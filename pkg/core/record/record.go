package record

import (
	"context"

	"github.com/scienceol/labportal/pkg/repo/model"
)

type Service interface {
	// List resolves the active saved view, applies it and the free-text
	// query, and returns one page of records.
	List(ctx context.Context, req *ListReq) (*ListResp, error)
	Get(ctx context.Context, id int64) (*model.LabRecord, error)
	Create(ctx context.Context, form *RecordForm) (*model.LabRecord, error)
	Update(ctx context.Context, id int64, form *RecordForm) (*model.LabRecord, error)
	// Delete is limited to staff users.
	Delete(ctx context.Context, id int64) error
}
