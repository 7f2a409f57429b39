package handler

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/store"
)

func TestMain(m *testing.M) {
	if err := appI18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	h, err := New(s, nil, model.ServerConfig{SecureCookies: false})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	r := chi.NewRouter()
	r.Use(appI18n.Middleware("en"))
	r.Use(h.BasePathMiddleware)
	h.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, s
}

// newTestClient returns a client with a cookie jar that does not follow
// redirects, so tests can assert on Location headers.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, c *http.Client, rawURL string) *http.Response {
	t.Helper()
	resp, err := c.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	return resp
}

// csrfToken reads the double-submit token the server stored in the jar. The
// caller must have issued at least one GET first.
func csrfToken(t *testing.T, c *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	for _, cookie := range c.Jar.Cookies(u) {
		if cookie.Name == "csrf_token" {
			return cookie.Value
		}
	}
	t.Fatal("csrf_token cookie not set")
	return ""
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf_token", csrfToken(t, c, rawURL))
	resp, err := c.PostForm(rawURL, form)
	if err != nil {
		t.Fatalf("POST %s: %v", rawURL, err)
	}
	return resp
}

func register(t *testing.T, c *http.Client, baseURL, username, password string, role model.Role) *http.Response {
	t.Helper()
	get(t, c, baseURL+"/register").Body.Close()
	return postForm(t, c, baseURL+"/register", url.Values{
		"username": {username},
		"password": {password},
		"role":     {string(role)},
	})
}

func login(t *testing.T, c *http.Client, baseURL, username, password string) *http.Response {
	t.Helper()
	get(t, c, baseURL+"/login").Body.Close()
	return postForm(t, c, baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func mustLogin(t *testing.T, c *http.Client, baseURL, username, password string) {
	t.Helper()
	resp := login(t, c, baseURL, username, password)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login %s: expected 303, got %d", username, resp.StatusCode)
	}
}

func seedAdmin(t *testing.T, s *store.Store, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := s.EnsureAdmin("admin", string(hash)); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
}

func seedTeacher(t *testing.T, s *store.Store, username, password string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id, err := s.CreateUser(model.User{
		Username: username, PasswordHash: string(hash),
		Role: model.RoleTeacher, Approved: true,
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	return id
}

func location(t *testing.T, resp *http.Response) string {
	t.Helper()
	loc := resp.Header.Get("Location")
	if loc == "" {
		t.Fatal("expected Location header")
	}
	return loc
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestRegisterAndLoginStudent(t *testing.T) {
	ts, s := newTestServer(t)
	c := newTestClient(t)

	resp := register(t, c, ts.URL, "alice", "secret", model.RoleStudent)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register: expected 303, got %d", resp.StatusCode)
	}
	if loc := location(t, resp); !strings.Contains(loc, "notice=StudentRegistered") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	u, _ := s.GetUserByUsername("alice")
	if u == nil || !u.Approved {
		t.Fatal("student should be approved immediately")
	}

	mustLogin(t, c, ts.URL, "alice", "secret")

	// The landing page routes an authenticated student to their dashboard.
	resp = get(t, c, ts.URL+"/")
	if got := location(t, resp); !strings.HasSuffix(got, "/student/dashboard") {
		t.Errorf("expected student dashboard redirect, got %q", got)
	}
	resp.Body.Close()
}

func TestLoginWrongPassword(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newTestClient(t)

	register(t, c, ts.URL, "alice", "secret", model.RoleStudent).Body.Close()

	resp := login(t, c, ts.URL, "alice", "wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Invalid username or password") {
		t.Error("expected invalid-credentials message in body")
	}
}

func TestUnapprovedTeacherCannotLogin(t *testing.T) {
	ts, s := newTestServer(t)
	c := newTestClient(t)

	resp := register(t, c, ts.URL, "teach", "secret", model.RoleTeacher)
	if loc := location(t, resp); !strings.Contains(loc, "notice=TeacherRegistered") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	resp = login(t, c, ts.URL, "teach", "secret")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unapproved teacher, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "not approved yet") {
		t.Error("expected pending-approval message in body")
	}

	u, _ := s.GetUserByUsername("teach")
	if err := s.ApproveTeacher(u.ID); err != nil {
		t.Fatalf("ApproveTeacher: %v", err)
	}
	mustLogin(t, c, ts.URL, "teach", "secret")
}

func TestDuplicateUsernameConflict(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newTestClient(t)

	register(t, c, ts.URL, "alice", "secret", model.RoleStudent).Body.Close()

	resp := register(t, c, ts.URL, "alice", "other", model.RoleTeacher)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Username already exists") {
		t.Error("expected username-taken message in body")
	}
}

func TestAdminApprovesTeacher(t *testing.T) {
	ts, s := newTestServer(t)
	seedAdmin(t, s, "adminpw")

	c := newTestClient(t)
	register(t, c, ts.URL, "teach", "secret", model.RoleTeacher).Body.Close()
	teacher, _ := s.GetUserByUsername("teach")

	admin := newTestClient(t)
	mustLogin(t, admin, ts.URL, "admin", "adminpw")

	resp := get(t, admin, ts.URL+"/admin/approve_teacher/"+strconv.FormatInt(teacher.ID, 10))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := location(t, resp); !strings.Contains(loc, "notice=TeacherApproved") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	teacher, _ = s.GetUserByID(teacher.ID)
	if !teacher.Approved {
		t.Fatal("teacher should be approved")
	}
}

func TestRoleAccessDenied(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newTestClient(t)

	register(t, c, ts.URL, "alice", "secret", model.RoleStudent).Body.Close()
	mustLogin(t, c, ts.URL, "alice", "secret")

	for _, path := range []string{"/admin/dashboard", "/teacher/courses", "/questions/1"} {
		resp := get(t, c, ts.URL+path)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, resp.StatusCode)
		}
		if loc := location(t, resp); !strings.Contains(loc, "notice=AccessDenied") {
			t.Errorf("%s: unexpected redirect %q", path, loc)
		}
		resp.Body.Close()
	}
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newTestClient(t)

	resp := get(t, c, ts.URL+"/results")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := location(t, resp); !strings.HasSuffix(loc, "/login") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()
}

func TestCSRFRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	// No cookie at all.
	resp, err := http.PostForm(ts.URL+"/login", url.Values{"username": {"x"}, "password": {"y"}})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf cookie, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Cookie present but form token wrong.
	c := newTestClient(t)
	get(t, c, ts.URL+"/login").Body.Close()
	resp, err = c.PostForm(ts.URL+"/login", url.Values{
		"username": {"x"}, "password": {"y"}, "csrf_token": {"bogus"},
	})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 with mismatched token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestTeacherCourseLifecycle(t *testing.T) {
	ts, s := newTestServer(t)
	seedTeacher(t, s, "teach", "secret")

	c := newTestClient(t)
	mustLogin(t, c, ts.URL, "teach", "secret")

	resp := postForm(t, c, ts.URL+"/teacher/courses/add", url.Values{
		"name":        {"Physics"},
		"description": {"Mechanics and waves"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("add course: expected 303, got %d", resp.StatusCode)
	}
	if loc := location(t, resp); !strings.Contains(loc, "notice=CourseAdded") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	courses, _ := s.ListCourses()
	if len(courses) != 1 || courses[0].Name != "Physics" {
		t.Fatalf("unexpected courses: %+v", courses)
	}

	resp = get(t, c, ts.URL+"/teacher/courses/delete/"+strconv.FormatInt(courses[0].ID, 10))
	if loc := location(t, resp); !strings.Contains(loc, "notice=CourseDeleted") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	courses, _ = s.ListCourses()
	if len(courses) != 0 {
		t.Fatalf("expected course deleted, got %+v", courses)
	}
}

func TestTeacherCannotTouchOthersCourse(t *testing.T) {
	ts, s := newTestServer(t)
	owner := seedTeacher(t, s, "owner", "secret")
	seedTeacher(t, s, "intruder", "secret")

	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: owner})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	questionID, err := s.InsertQuestion(model.Question{
		CourseID: courseID, Text: "Q",
		OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4",
		CorrectOption: "A", Marks: 1,
	})
	if err != nil {
		t.Fatalf("InsertQuestion: %v", err)
	}

	c := newTestClient(t)
	mustLogin(t, c, ts.URL, "intruder", "secret")

	// Deleting the course through the teacher routes.
	resp := get(t, c, ts.URL+"/teacher/courses/delete/"+strconv.FormatInt(courseID, 10))
	if loc := location(t, resp); !strings.Contains(loc, "notice=NotYourCourse") {
		t.Errorf("course delete: unexpected redirect %q", loc)
	}
	resp.Body.Close()

	// Adding a question to someone else's course.
	get(t, c, ts.URL+"/teacher/dashboard").Body.Close()
	resp = postForm(t, c, ts.URL+"/questions/add/"+strconv.FormatInt(courseID, 10), url.Values{
		"question_text": {"Evil"},
		"option_a":      {"1"}, "option_b": {"2"}, "option_c": {"3"}, "option_d": {"4"},
		"correct_option": {"A"},
		"marks":          {"1"},
	})
	if loc := location(t, resp); !strings.Contains(loc, "notice=NotYourCourse") {
		t.Errorf("question add: unexpected redirect %q", loc)
	}
	resp.Body.Close()

	// Deleting a question in someone else's course.
	resp = get(t, c, ts.URL+"/questions/delete/"+strconv.FormatInt(questionID, 10))
	if loc := location(t, resp); !strings.Contains(loc, "notice=NotYourCourse") {
		t.Errorf("question delete: unexpected redirect %q", loc)
	}
	resp.Body.Close()

	if qs, _ := s.ListQuestionsByCourse(courseID); len(qs) != 1 {
		t.Fatalf("expected course untouched, got %d questions", len(qs))
	}
}

func TestAdminMayDeleteAnyCourse(t *testing.T) {
	ts, s := newTestServer(t)
	seedAdmin(t, s, "adminpw")
	owner := seedTeacher(t, s, "owner", "secret")

	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: owner})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	c := newTestClient(t)
	mustLogin(t, c, ts.URL, "admin", "adminpw")

	resp := get(t, c, ts.URL+"/admin/courses/delete/"+strconv.FormatInt(courseID, 10))
	if loc := location(t, resp); !strings.Contains(loc, "notice=CourseDeleted") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	if courses, _ := s.ListCourses(); len(courses) != 0 {
		t.Fatalf("expected no courses, got %+v", courses)
	}
}

func TestAddQuestionRejectsBadCorrectOption(t *testing.T) {
	ts, s := newTestServer(t)
	seedTeacher(t, s, "teach", "secret")

	teacher, _ := s.GetUserByUsername("teach")
	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: teacher.ID})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	c := newTestClient(t)
	mustLogin(t, c, ts.URL, "teach", "secret")
	get(t, c, ts.URL+"/teacher/dashboard").Body.Close()

	resp := postForm(t, c, ts.URL+"/questions/add/"+strconv.FormatInt(courseID, 10), url.Values{
		"question_text": {"Q"},
		"option_a":      {"1"}, "option_b": {"2"}, "option_c": {"3"}, "option_d": {"4"},
		"correct_option": {"E"},
		"marks":          {"1"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if qs, _ := s.ListQuestionsByCourse(courseID); len(qs) != 0 {
		t.Fatalf("expected no questions stored, got %d", len(qs))
	}
}

func TestExamScoring(t *testing.T) {
	ts, s := newTestServer(t)
	owner := seedTeacher(t, s, "teach", "secret")

	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: owner})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	var qIDs []int64
	for _, q := range []struct {
		correct string
		marks   int
	}{
		{"A", 2}, {"B", 3}, {"C", 5},
	} {
		id, err := s.InsertQuestion(model.Question{
			CourseID: courseID, Text: "Q",
			OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4",
			CorrectOption: q.correct, Marks: q.marks,
		})
		if err != nil {
			t.Fatalf("InsertQuestion: %v", err)
		}
		qIDs = append(qIDs, id)
	}

	c := newTestClient(t)
	register(t, c, ts.URL, "stud", "secret", model.RoleStudent).Body.Close()
	mustLogin(t, c, ts.URL, "stud", "secret")

	examURL := ts.URL + "/exam/" + strconv.FormatInt(courseID, 10)
	get(t, c, examURL).Body.Close()

	// Only the second question is answered correctly; the first gets a wrong
	// answer and the third is left blank.
	resp := postForm(t, c, examURL, url.Values{
		"q_" + strconv.FormatInt(qIDs[0], 10): {"B"},
		"q_" + strconv.FormatInt(qIDs[1], 10): {"B"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("submit: expected 303, got %d", resp.StatusCode)
	}
	loc := location(t, resp)
	if !strings.Contains(loc, "score=3") || !strings.Contains(loc, "total=10") {
		t.Fatalf("expected score=3 total=10 in redirect, got %q", loc)
	}
	resp.Body.Close()

	body := readBody(t, get(t, c, ts.URL+loc))
	if !strings.Contains(body, "3/10") {
		t.Error("expected score 3/10 on results page")
	}

	stud, _ := s.GetUserByUsername("stud")
	results, _ := s.ListResultsByStudent(stud.ID)
	if len(results) != 1 || results[0].Score != 3 || results[0].TotalMarks != 10 {
		t.Fatalf("unexpected stored result: %+v", results)
	}
}

func TestResultsListNewestFirst(t *testing.T) {
	ts, s := newTestServer(t)
	owner := seedTeacher(t, s, "teach", "secret")

	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: owner})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	qID, err := s.InsertQuestion(model.Question{
		CourseID: courseID, Text: "Q",
		OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4",
		CorrectOption: "A", Marks: 1,
	})
	if err != nil {
		t.Fatalf("InsertQuestion: %v", err)
	}

	c := newTestClient(t)
	register(t, c, ts.URL, "stud", "secret", model.RoleStudent).Body.Close()
	mustLogin(t, c, ts.URL, "stud", "secret")

	examURL := ts.URL + "/exam/" + strconv.FormatInt(courseID, 10)
	field := "q_" + strconv.FormatInt(qID, 10)

	// First a wrong answer, then a right one. Retakes are allowed and each
	// attempt gets its own row.
	get(t, c, examURL).Body.Close()
	postForm(t, c, examURL, url.Values{field: {"B"}}).Body.Close()
	get(t, c, examURL).Body.Close()
	postForm(t, c, examURL, url.Values{field: {"A"}}).Body.Close()

	stud, _ := s.GetUserByUsername("stud")
	results, _ := s.ListResultsByStudent(stud.ID)
	if len(results) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(results))
	}
	if results[0].Score != 1 || results[1].Score != 0 {
		t.Errorf("expected newest attempt first, got scores [%d %d]", results[0].Score, results[1].Score)
	}
}

func TestGenerateUnavailableWithoutLLM(t *testing.T) {
	ts, s := newTestServer(t)
	owner := seedTeacher(t, s, "teach", "secret")

	courseID, err := s.CreateCourse(model.Course{Name: "Physics", CreatedBy: owner})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	c := newTestClient(t)
	mustLogin(t, c, ts.URL, "teach", "secret")

	resp := get(t, c, ts.URL+"/questions/generate/"+strconv.FormatInt(courseID, 10))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when drafts disabled, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutEndsSession(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newTestClient(t)

	register(t, c, ts.URL, "alice", "secret", model.RoleStudent).Body.Close()
	mustLogin(t, c, ts.URL, "alice", "secret")

	resp := get(t, c, ts.URL+"/logout")
	if loc := location(t, resp); !strings.HasSuffix(loc, "/login") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()

	resp = get(t, c, ts.URL+"/results")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", resp.StatusCode)
	}
	if loc := location(t, resp); !strings.HasSuffix(loc, "/login") {
		t.Errorf("unexpected redirect %q", loc)
	}
	resp.Body.Close()
}
