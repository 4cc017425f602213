package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/auth"
	"studyfortress/internal/catalog"
	"studyfortress/internal/workspace"
	"studyfortress/pkg/study"
)

type testApp struct {
	router http.Handler
	store  *workspace.Store
	auth   *auth.Service
	cookie *http.Cookie
	user   auth.User
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	svc := auth.New(auth.Options{Secret: "test-secret", TTL: time.Hour}, nil)
	store := workspace.NewStore(cat, workspace.Options{Timing: workspace.Timing{
		OrganizeDelay:    10 * time.Millisecond,
		TranscribeDelay:  10 * time.Millisecond,
		PlaybackDuration: 10 * time.Millisecond,
	}}, nil)

	r := chi.NewRouter()
	NewAuthHandler(svc, 0, nil).RegisterRoutes(r)
	NewDashboardHandler(cat, svc).RegisterRoutes(r)
	NewLabHandler(store, cat, svc, LabOptions{KeepAlive: time.Second}, nil).RegisterRoutes(r)

	user, token, err := svc.Login(context.Background(), auth.Credentials{Email: "alex@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return &testApp{
		router: r,
		store:  store,
		auth:   svc,
		cookie: &http.Cookie{Name: auth.CookieName, Value: token},
		user:   user,
	}
}

func (a *testApp) do(method, target string, form url.Values, hx bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if hx {
		req.Header.Set("Hx-Request", "true")
	}
	req.AddCookie(a.cookie)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) workspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, ok := a.store.Get(a.user.ID, "biology")
	if !ok {
		t.Fatal("workspace was not opened")
	}
	return ws
}

func TestLogin_RejectsInvalidForm(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/login", url.Values{"email": {"not-an-email"}}, false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "this field is required") {
		t.Error("missing password error not rendered")
	}
}

func TestLogin_SetsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(url.Values{"email": {"sam@example.com"}, "password": {"x"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status %d location %q, want 303 to /", rec.Code, rec.Header().Get("Location"))
	}
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("session cookie not set")
	}
	u, err := app.auth.Parse(session.Value)
	if err != nil || u.Email != "sam@example.com" {
		t.Errorf("cookie parsed to %+v, %v", u, err)
	}
}

func TestLoginPage_RedirectsSignedInUsers(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/login", nil, false)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status %d, want 303", rec.Code)
	}
}

func TestDashboard_RequiresSession(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("status %d location %q, want redirect to /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDashboard_ListsFolders(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Biology 101", "/lab/biology", "Literature", "alex@example.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestBuildDashboard_Summaries(t *testing.T) {
	cat, _ := catalog.Default()
	data := buildDashboard(cat, auth.User{Email: "a@b.c"})
	if data.Profile.Initials != "AJ" {
		t.Errorf("Initials %q, want AJ", data.Profile.Initials)
	}
	peak := 0
	for _, bar := range data.Activity {
		if bar.Height > peak {
			peak = bar.Height
		}
	}
	if peak != 100 {
		t.Errorf("busiest day height %d, want 100", peak)
	}
	if len(data.Folders) != 6 {
		t.Errorf("folders %d, want 6", len(data.Folders))
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatStudyTime(45); got != "45m" {
		t.Errorf("formatStudyTime(45) = %q", got)
	}
	if got := formatStudyTime(125); got != "2h 5m" {
		t.Errorf("formatStudyTime(125) = %q", got)
	}
	if got := formatAge(90 * time.Minute); got != "1h ago" {
		t.Errorf("formatAge(90m) = %q", got)
	}
	if got := formatAge(10 * time.Second); got != "just now" {
		t.Errorf("formatAge(10s) = %q", got)
	}
}

func TestLabPage_RendersSeed(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/lab/biology", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`sse-connect="/lab/biology/stream"`, "Cell Structure", "Photosynthesis Process", `data-item="canvas-note-1"`} {
		if !strings.Contains(body, want) {
			t.Errorf("lab page missing %q", want)
		}
	}
}

func TestLab_ZoomAnswersHTMXWithNoContent(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/lab/biology/canvas/zoom", url.Values{"dir": {"1"}}, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d, want 204", rec.Code)
	}
	if s := app.workspace(t).Viewport().Scale; s < 1.09 || s > 1.11 {
		t.Errorf("scale %v, want 1.1", s)
	}

	rec = app.do(http.MethodPost, "/lab/biology/canvas/zoom", url.Values{"dy": {"120"}}, false)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/lab/biology" {
		t.Errorf("status %d location %q, want 303 to the lab", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLab_DragReturnsPlacedPosition(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/lab/biology/canvas/grab", url.Values{"item": {"canvas-note-1"}, "gx": {"10"}, "gy": {"20"}}, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("grab status %d", rec.Code)
	}
	rec = app.do(http.MethodPost, "/lab/biology/canvas/drag", url.Values{"x": {"510"}, "y": {"420"}}, true)
	var got struct {
		ID string  `json:"id"`
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "canvas-note-1" || got.X != 500 || got.Y != 400 {
		t.Errorf("drag answered %+v, want canvas-note-1 at 500,400", got)
	}
	if rec := app.do(http.MethodPost, "/lab/biology/canvas/drop", nil, true); rec.Code != http.StatusNoContent {
		t.Errorf("drop status %d", rec.Code)
	}
	if rec := app.do(http.MethodPost, "/lab/biology/canvas/grab", url.Values{"item": {"nope"}}, true); rec.Code != http.StatusNotFound {
		t.Errorf("grab unknown item status %d, want 404", rec.Code)
	}
}

func TestLab_TabsAndTags(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/lab/biology/panels/panel-1/tabs", url.Values{"kind": {"calculator"}, "position": {"top"}}, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("add tab status %d", rec.Code)
	}
	snap := app.workspace(t).Snapshot(time.Now())
	if n := len(snap.Panels[0].Tabs); n != 6 {
		t.Errorf("tabs %d, want 6", n)
	}

	if rec := app.do(http.MethodPost, "/lab/biology/panels/panel-1/tabs", url.Values{"kind": {"spreadsheet"}}, true); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown kind status %d, want 400", rec.Code)
	}
	if rec := app.do(http.MethodPost, "/lab/biology/panels/panel-9/tabs/note-1/rename", url.Values{"title": {"x"}}, true); rec.Code != http.StatusNotFound {
		t.Errorf("unknown panel status %d, want 404", rec.Code)
	}

	if rec := app.do(http.MethodPost, "/lab/biology/items/note-1-1/tags", url.Values{"name": {"review"}}, true); rec.Code != http.StatusNoContent {
		t.Fatalf("add tag status %d", rec.Code)
	}
	for _, tag := range app.workspace(t).Snapshot(time.Now()).Tags {
		if tag.Name == "Review" && tag.Count != 3 {
			t.Errorf("Review count %d, want 3", tag.Count)
		}
	}
	if rec := app.do(http.MethodPost, "/lab/biology/items/nope/tags/remove", url.Values{"name": {"Review"}}, true); rec.Code != http.StatusNotFound {
		t.Errorf("remove tag on unknown item status %d, want 404", rec.Code)
	}
}

func TestLab_SidebarSearch(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/lab/biology/sidebar?q=photo", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Photosynthesis Process") {
		t.Error("matching entry missing")
	}
	if strings.Contains(body, "Textbook Chapter 3") {
		t.Error("non-matching entry shown")
	}
}

func TestLab_StudyFlow(t *testing.T) {
	app := newTestApp(t)
	if rec := app.do(http.MethodPost, "/lab/biology/study/start", nil, true); rec.Code != http.StatusBadRequest {
		t.Errorf("start with empty selection status %d, want 400", rec.Code)
	}
	app.do(http.MethodPost, "/lab/biology/study/open", nil, true)
	app.do(http.MethodPost, "/lab/biology/study/select", url.Values{"item": {"note-1"}}, true)
	if rec := app.do(http.MethodPost, "/lab/biology/study/start", nil, true); rec.Code != http.StatusNoContent {
		t.Fatalf("start status %d", rec.Code)
	}
	s := app.workspace(t).Snapshot(time.Now()).Study
	if s.State != study.StateActive || s.Card.Question != "Study: Cell Structure Notes" {
		t.Fatalf("study %v %q, want active on the note", s.State, s.Card.Question)
	}
	app.do(http.MethodPost, "/lab/biology/study/answer", url.Values{"correct": {"true"}}, true)
	if got := app.workspace(t).Snapshot(time.Now()).Study.State; got != study.StateComplete {
		t.Errorf("state %v, want complete", got)
	}
}

func TestLab_RecordingLifecycle(t *testing.T) {
	app := newTestApp(t)
	if rec := app.do(http.MethodPost, "/lab/biology/recordings/stop", nil, true); rec.Code != http.StatusConflict {
		t.Errorf("stop while idle status %d, want 409", rec.Code)
	}
	app.do(http.MethodPost, "/lab/biology/recordings/start", nil, true)
	app.do(http.MethodPost, "/lab/biology/recordings/stop", nil, true)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(app.workspace(t).Snapshot(time.Now().UTC()).Recordings) == 3 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("transcription never finished")
}

func TestLab_RejectsNonPDFUpload(t *testing.T) {
	app := newTestApp(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("panel", "panel-1")
	fw, _ := mw.CreateFormFile("file", "notes.pdf")
	_, _ = fw.Write([]byte("definitely not a pdf"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/lab/biology/pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(app.cookie)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestLab_StreamSendsFragmentsAndUpdates(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/lab/biology/stream", nil)
	req.AddCookie(app.cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	lines.Buffer(make([]byte, 0, 64*1024), 1<<20)
	waitFor := func(event string) {
		t.Helper()
		for lines.Scan() {
			if lines.Text() == "event: "+event {
				return
			}
		}
		t.Fatalf("stream ended before %q: %v", event, lines.Err())
	}
	for _, slot := range allSlots {
		waitFor(slot)
	}

	app.store.Publish(app.user.ID, "biology", workspace.EventMindMap)
	waitFor("mindmap")
}

func TestMerge_DeduplicatesInOrder(t *testing.T) {
	got := merge([]string{"sidebar", "panels"}, "panels", "canvas", "sidebar")
	want := []string{"sidebar", "panels", "canvas"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("merge %v, want %v", got, want)
	}
}

func TestLab_UnknownFoldersShareOneWorkspace(t *testing.T) {
	app := newTestApp(t)
	for _, folder := range []string{"astrology", "alchemy", "numerology"} {
		rec := app.do(http.MethodGet, "/lab/"+folder, nil, false)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", folder, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Unknown Folder") {
			t.Errorf("%s: page not titled Unknown Folder", folder)
		}
	}
	if n := app.store.Len(); n != 1 {
		t.Errorf("store holds %d workspaces, want 1", n)
	}
	rec := app.do(http.MethodPost, "/lab/alchemy/canvas/zoom", url.Values{"dir": {"1"}}, false)
	if rec.Header().Get("Location") != "/lab/alchemy" {
		t.Errorf("redirect %q, want the requested path", rec.Header().Get("Location"))
	}
}
