package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// ── stubs ─────────────────────────────────────────────────────────────────────

// stubMembers records the input of the last write.
type stubMembers struct {
	ports.MemberService
	added     *ports.CreateMemberInput
	updated   *ports.UpdateMemberInput
	updatedID string
	body      string
}

func (s *stubMembers) Add(_ context.Context, in ports.CreateMemberInput) (string, error) {
	s.added = &in
	if up := in.Files.Certification.Upload; up != nil {
		b, _ := io.ReadAll(up.Body)
		s.body = string(b)
	}
	return "m1", nil
}

func (s *stubMembers) Update(_ context.Context, id string, in ports.UpdateMemberInput) error {
	s.updatedID, s.updated = id, &in
	return nil
}

type stubProjects struct {
	ports.ProjectService
	updated   *ports.UpdateProjectInput
	deletedID string
	deleteErr error
	missing   bool
}

func (s *stubProjects) Update(_ context.Context, _ string, in ports.UpdateProjectInput) error {
	s.updated = &in
	return nil
}

func (s *stubProjects) Delete(_ context.Context, id string) (bool, error) {
	s.deletedID = id
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	return !s.missing, nil
}

type stubCalendar struct {
	events []ports.CalendarEvent
}

func (s stubCalendar) Events(context.Context, time.Time) ([]ports.CalendarEvent, error) {
	return s.events, nil
}

type stubStorage struct {
	objects map[string]string
}

func (s stubStorage) Put(context.Context, string, *domain.Upload) (string, error) {
	return "", nil
}

func (s stubStorage) Get(_ context.Context, path string) (*ports.Object, error) {
	body, ok := s.objects[path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return &ports.Object{
		Body:        io.NopCloser(strings.NewReader(body)),
		ContentType: "text/plain",
		Size:        int64(len(body)),
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

type part struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, method, target, data string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField(dataField, data); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, f.content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newContext(req *http.Request, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// ── members ───────────────────────────────────────────────────────────────────

func TestMemberCreate_MultipartUploadsAndRecord(t *testing.T) {
	svc := &stubMembers{}
	h := NewMemberHandler(svc)

	req := multipartRequest(t, http.MethodPost, "/v1/members",
		`{"name":"Sara","experience":"5","position":"Lead","speciality":"Audit","diploma":"MSc","projects":"3","cvShort":"https://cdn/cv.pdf"}`,
		part{fieldCertification, "cert.pdf", "certificate bytes"},
	)
	c, rec := newContext(req)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	in := svc.added
	if in == nil || in.Member.Name != "Sara" {
		t.Fatalf("member = %+v", in)
	}
	cert := in.Files.Certification
	if !cert.Pending() || cert.Upload.Name != "cert.pdf" {
		t.Errorf("certification = %+v, want pending cert.pdf", cert)
	}
	if svc.body != "certificate bytes" {
		t.Errorf("upload body = %q", svc.body)
	}
	if in.Files.CVShort.Pending() || in.Files.CVShort.Locator != "https://cdn/cv.pdf" {
		t.Errorf("cv_short = %+v, want record locator", in.Files.CVShort)
	}
	if in.Files.CVLong.Present() {
		t.Errorf("cv_long = %+v, want absent", in.Files.CVLong)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "m1" || resp.Notification.Message != "Member added successfully" {
		t.Errorf("response = %+v", resp)
	}
}

func TestMemberCreate_MissingDataField(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/v1/members", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	c, _ := newContext(req)

	err := NewMemberHandler(&stubMembers{}).Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestMemberUpdate_JSONPatchCarriesOnlySentFields(t *testing.T) {
	svc := &stubMembers{}
	c, rec := newContext(jsonRequest(http.MethodPut, "/v1/members/m1", `{"position":"Partner"}`), "id", "m1")

	if err := NewMemberHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.updatedID != "m1" {
		t.Errorf("id = %q", svc.updatedID)
	}
	p := svc.updated.Patch
	if p.Position == nil || *p.Position != "Partner" {
		t.Errorf("position = %v", p.Position)
	}
	if p.Name != nil || p.Experience != nil {
		t.Error("unsent fields must stay nil")
	}
	if svc.updated.Files.Certification.Present() {
		t.Error("no attachment was sent")
	}
}

// ── projects ──────────────────────────────────────────────────────────────────

func TestProjectUpdate_MultipartReplacesOneAttachment(t *testing.T) {
	svc := &stubProjects{}
	req := multipartRequest(t, http.MethodPut, "/v1/projects/p1",
		`{"projectName":"Audit 2024","interventionTeam":[{"name":"Lead"}]}`,
		part{fieldPurchaseOrder, "bdc.pdf", "order"},
	)
	c, _ := newContext(req, "id", "p1")

	if err := NewProjectHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	in := svc.updated
	if in.Patch.Name == nil || *in.Patch.Name != "Audit 2024" {
		t.Errorf("name = %v", in.Patch.Name)
	}
	if len(in.Patch.Team) != 1 || in.Patch.Team[0].Name != "Lead" {
		t.Errorf("team = %+v", in.Patch.Team)
	}
	if !in.Files.PurchaseOrder.Pending() {
		t.Error("purchase order should be a pending upload")
	}
	if in.Files.TechnicalOffer.Present() || in.Files.MeetingMinutes.Present() {
		t.Error("untouched attachments must stay absent")
	}
}

func TestProjectDelete_PassesServiceError(t *testing.T) {
	svc := &stubProjects{deleteErr: domain.ErrInvalidProjectID}
	c, _ := newContext(httptest.NewRequest(http.MethodDelete, "/v1/projects/%20", nil), "id", " ")

	err := NewProjectHandler(svc).Delete(c)
	if err != domain.ErrInvalidProjectID {
		t.Fatalf("err = %v, want ErrInvalidProjectID", err)
	}
	if svc.deletedID != " " {
		t.Errorf("deleted id = %q", svc.deletedID)
	}
}

func TestProjectDelete_NotificationReflectsOutcome(t *testing.T) {
	cases := []struct {
		name    string
		missing bool
		want    Notification
	}{
		{"existing", false, Success("Project deleted successfully")},
		{"unknown", true, Info("No project to delete")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubProjects{missing: tc.missing}
			c, rec := newContext(httptest.NewRequest(http.MethodDelete, "/v1/projects/p9", nil), "id", "p9")

			if err := NewProjectHandler(svc).Delete(c); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var resp messageResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Notification != tc.want {
				t.Errorf("notification = %+v, want %+v", resp.Notification, tc.want)
			}
		})
	}
}

// ── clients ───────────────────────────────────────────────────────────────────

type stubClients struct {
	ports.ClientService
	patch domain.ClientPatch
}

func (s *stubClients) Update(_ context.Context, _ string, p domain.ClientPatch) error {
	s.patch = p
	return nil
}

func TestClientUpdate_Patch(t *testing.T) {
	svc := &stubClients{}
	c, rec := newContext(jsonRequest(http.MethodPut, "/v1/clients/c1", `{"sector":"Energy"}`), "id", "c1")

	if err := NewClientHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if svc.patch.Sector == nil || *svc.patch.Sector != "Energy" || svc.patch.Name != nil {
		t.Errorf("patch = %+v", svc.patch)
	}
	var resp messageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Notification != Success("Client updated successfully") {
		t.Errorf("notification = %+v", resp.Notification)
	}
}

// ── calendar ──────────────────────────────────────────────────────────────────

func TestCalendarEvents_FormatsDates(t *testing.T) {
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	days := 4
	svc := stubCalendar{events: []ports.CalendarEvent{
		{ProjectID: "p1", Title: "Audit", End: &end, DaysLeft: &days, Status: "Soon"},
		{ProjectID: "p2", Title: "Draft", Status: "Unknown"},
	}}
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/v1/calendar", nil))

	if err := NewCalendarHandler(svc).Events(c); err != nil {
		t.Fatalf("Events: %v", err)
	}
	var got []eventView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %+v", got)
	}
	if got[0].End != "2024-03-15" || got[0].DaysLeft == nil || *got[0].DaysLeft != 4 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].End != "" || got[1].DaysLeft != nil || got[1].Status != "Unknown" {
		t.Errorf("second = %+v", got[1])
	}
}

// ── files ─────────────────────────────────────────────────────────────────────

func TestFileGet_StreamsObject(t *testing.T) {
	h := NewFileHandler(stubStorage{objects: map[string]string{"members/cv.txt": "hello"}})
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/files/members/cv.txt", nil), "*", "members/cv.txt")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/plain" {
		t.Errorf("content type = %q", ct)
	}
}

func TestFileGet_EscapedNames(t *testing.T) {
	h := NewFileHandler(stubStorage{objects: map[string]string{
		"members/my cv #1.pdf":   "first",
		"members/cv,final.pdf":   "second",
		"members/100% legit.pdf": "third",
	}})
	e := echo.New()
	e.GET("/files/*", h.Get)

	cases := map[string]string{
		"/files/members/my%20cv%20%231.pdf": "first",
		"/files/members/cv%2Cfinal.pdf":     "second",
		"/files/members/100%25%20legit.pdf": "third",
	}
	for target, want := range cases {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Errorf("GET %s = %d %q, want %q", target, rec.Code, rec.Body.String(), want)
		}
	}
}

func TestFileGet_Missing(t *testing.T) {
	h := NewFileHandler(stubStorage{})
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/files/nope", nil), "*", "nope")

	if err := h.Get(c); err != domain.ErrObjectNotFound {
		t.Fatalf("err = %v, want ErrObjectNotFound", err)
	}
}
