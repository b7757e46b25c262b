package record_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/record"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
	"github.com/scienceol/labportal/pkg/web/render"
	recordView "github.com/scienceol/labportal/pkg/web/views/record"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	listReq   *record.ListReq
	listResp  *record.ListResp
	listErr   error
	createErr error
	deleted   int64
}

func (f *fakeService) List(_ context.Context, req *record.ListReq) (*record.ListResp, error) {
	f.listReq = req
	return f.listResp, f.listErr
}

func (f *fakeService) Get(_ context.Context, id int64) (*model.LabRecord, error) {
	if id != 1 {
		return nil, code.RecordNotFound
	}
	return &model.LabRecord{BaseModel: model.BaseModel{ID: 1}, SampleCode: "LAB-2026-0001", Status: model.StatusReceived}, nil
}

func (f *fakeService) Create(_ context.Context, form *record.RecordForm) (*model.LabRecord, error) {
	return &model.LabRecord{}, f.createErr
}

func (f *fakeService) Update(_ context.Context, id int64, form *record.RecordForm) (*model.LabRecord, error) {
	return f.Get(context.Background(), id)
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	f.deleted = id
	return nil
}

func newEngine(svc record.Service, user *model.UserData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.SetHTMLTemplate(render.Templates())
	g.Use(func(ctx *gin.Context) {
		ctx.Set(auth.USERKEY, user)
		ctx.Next()
	})
	h := recordView.NewRecordHandle(svc, render.New(nil))
	g.GET("/records/", h.List)
	g.POST("/records/new/", h.Create)
	g.GET("/records/:id/", h.Detail)
	g.GET("/records/:id/delete/", h.ConfirmDelete)
	g.POST("/records/:id/delete/", h.Delete)
	g.GET("/api/v1/records", h.APIList)
	return g
}

func do(g *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestListRendersVisibleColumns(t *testing.T) {
	svc := &fakeService{listResp: &record.ListResp{
		Page: &common.PageResp[[]*model.LabRecord]{
			Data:     []*model.LabRecord{{BaseModel: model.BaseModel{ID: 1}, SampleCode: "LAB-2026-0001", Project: "Genomics"}},
			Total:    1,
			Page:     1,
			PageSize: common.DefaultPageSize,
		},
		VisibleColumns: []string{"sample_code", "project"},
		Query:          "geno",
	}}
	g := newEngine(svc, &model.UserData{ID: 1, Username: "analyst"})

	w := do(g, httptest.NewRequest(http.MethodGet, "/records/?q=geno&page=last", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "LAB-2026-0001")
	assert.Contains(t, body, "Genomics")
	assert.Contains(t, body, "Sample Code")
	assert.NotContains(t, body, "Read Count")
	assert.Equal(t, "geno", svc.listReq.Query)
	assert.Equal(t, "last", svc.listReq.Page)
}

func TestListUnknownViewIsNotFound(t *testing.T) {
	g := newEngine(&fakeService{listErr: code.RecordNotFound}, &model.UserData{ID: 1})

	w := do(g, httptest.NewRequest(http.MethodGet, "/records/?view=abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, httptest.NewRequest(http.MethodGet, "/api/v1/records?view=abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "record not found")
}

func TestCreateRerendersForm(t *testing.T) {
	errs := model.FieldErrors{}
	errs.Add("qc_score", "QC score must be between 0 and 100.")
	g := newEngine(&fakeService{createErr: errs}, &model.UserData{ID: 1})

	form := url.Values{"sample_code": {"LAB-2026-0042"}, "qc_score": {"150"}}
	req := httptest.NewRequest(http.MethodPost, "/records/new/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(g, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "QC score must be between 0 and 100.")
	assert.Contains(t, w.Body.String(), `value="LAB-2026-0042"`)
}

func TestCreateRedirects(t *testing.T) {
	g := newEngine(&fakeService{}, &model.UserData{ID: 1})

	form := url.Values{"sample_code": {"LAB-2026-0042"}, "received_at": {utils.Today().Format("2006-01-02")}}
	req := httptest.NewRequest(http.MethodPost, "/records/new/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(g, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/records/", w.Header().Get("Location"))
}

func TestDetailAndDelete(t *testing.T) {
	svc := &fakeService{}
	analyst := newEngine(svc, &model.UserData{ID: 1})

	assert.Equal(t, http.StatusOK, do(analyst, httptest.NewRequest(http.MethodGet, "/records/1/", nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(analyst, httptest.NewRequest(http.MethodGet, "/records/2/", nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(analyst, httptest.NewRequest(http.MethodGet, "/records/abc/", nil)).Code)
	assert.Equal(t, http.StatusForbidden, do(analyst, httptest.NewRequest(http.MethodGet, "/records/1/delete/", nil)).Code)

	staff := newEngine(svc, &model.UserData{ID: 2, IsStaff: true})
	assert.Equal(t, http.StatusOK, do(staff, httptest.NewRequest(http.MethodGet, "/records/1/delete/", nil)).Code)
	w := do(staff, httptest.NewRequest(http.MethodPost, "/records/1/delete/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.EqualValues(t, 1, svc.deleted)
}
