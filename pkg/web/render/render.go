package render

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/record"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/repo/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "2006-01-02"

var funcs = template.FuncMap{
	"columnLabel":     model.ColumnLabel,
	"orderingLabel":   model.OrderingLabel,
	"statusLabel":     func(s string) string { return model.Status(s).Label() },
	"statusChoices":   func() []model.Choice { return model.StatusChoices },
	"columnChoices":   func() []model.Choice { return model.ColumnChoices },
	"orderingChoices": func() []model.Choice { return model.OrderingChoices },
	"columnValue": func(r *model.LabRecord, col string) string {
		return r.ColumnValue(col)
	},
	"add":       func(a, b int) int { return a + b },
	"deref":     deref,
	"date":      formatDate,
	"pageQuery": pageQuery,
}

// Templates parses every embedded page. Page templates are named after their
// file and share the "header" and "footer" blocks.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type Renderer struct {
	store session.Store
}

func New(store session.Store) *Renderer {
	return &Renderer{store: store}
}

// HTML renders a page with the current user and any pending flash messages.
func (r *Renderer) HTML(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = auth.GetCurrentUser(ctx)
	data["Messages"] = r.popFlashes(ctx)
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	ctx.HTML(status, name, data)
}

// Flash queues msg for the next page rendered in this session.
func (r *Renderer) Flash(ctx *gin.Context, msg string) {
	id := auth.SessionID(ctx)
	if r.store == nil || id == "" {
		return
	}
	if err := r.store.AddFlash(ctx, id, msg); err != nil {
		logger.Warnf(ctx, "add flash err: %+v", err)
	}
}

// Error renders err as a status page.
func (r *Renderer) Error(ctx *gin.Context, err error) {
	c := code.Of(err)
	status := c.HTTPStatus()
	msg := http.StatusText(status)
	if status >= http.StatusInternalServerError {
		logger.Errorf(ctx, "%s %s err: %+v", ctx.Request.Method, ctx.Request.URL.Path, err)
	} else {
		var ce *code.Err
		if errors.As(err, &ce) && c == code.NoPermission && ce.Msg != "" {
			msg = ce.Msg
		}
	}
	r.HTML(ctx, status, "error.html", gin.H{
		"Title":   msg,
		"Status":  status,
		"Message": msg,
	})
	ctx.Abort()
}

func (r *Renderer) popFlashes(ctx *gin.Context) []string {
	id := auth.SessionID(ctx)
	if r.store == nil || id == "" {
		return nil
	}
	msgs, err := r.store.PopFlashes(ctx, id)
	if err != nil {
		logger.Warnf(ctx, "pop flashes err: %+v", err)
		return nil
	}
	return msgs
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format(dateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format(dateLayout)
	default:
		return "-"
	}
}

// pageQuery keeps the selected view and search term across page links.
func pageQuery(resp *record.ListResp, page int) template.URL {
	values := url.Values{}
	if resp.SelectedView != nil {
		values.Set("view", strconv.FormatInt(resp.SelectedView.ID, 10))
	}
	if resp.Query != "" {
		values.Set("q", resp.Query)
	}
	values.Set("page", strconv.Itoa(page))
	return template.URL(values.Encode())
}
