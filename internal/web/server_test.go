package web

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	e := newEnv(t)
	for _, path := range []string{
		"/admin/dashboard", "/admin/teachers", "/admin/students",
		"/teacher/dashboard", "/teacher/attendance",
		"/student/dashboard", "/reports",
	} {
		assertRedirect(t, e.get(path, nil), "/login")
	}
}

func TestGuardRedirectsWrongRole(t *testing.T) {
	e := newEnv(t)
	cases := []struct {
		role string
		path string
	}{
		{"student", "/admin/teachers"},
		{"student", "/reports"},
		{"teacher", "/admin/dashboard"},
		{"teacher", "/student/dashboard"},
		{"admin", "/teacher/attendance"},
	}
	for _, tc := range cases {
		assertRedirect(t, e.get(tc.path, e.seedSession(tc.role)), "/")
	}
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	e := newEnv(t)
	cases := []struct {
		role string
		path string
	}{
		{"admin", "/admin/dashboard"},
		{"admin", "/reports"},
		{"teacher", "/teacher/attendance"},
		{"teacher", "/reports"},
		{"student", "/student/dashboard"},
	}
	for _, tc := range cases {
		if rec := e.get(tc.path, e.seedSession(tc.role)); rec.Code != http.StatusOK {
			t.Fatalf("%s as %s: expected 200, got %d", tc.path, tc.role, rec.Code)
		}
	}
}

func TestHomeRedirector(t *testing.T) {
	e := newEnv(t)
	assertRedirect(t, e.get("/", nil), "/login")
	assertRedirect(t, e.get("/", e.seedSession("admin")), "/admin/dashboard")
	assertRedirect(t, e.get("/", e.seedSession("teacher")), "/teacher/dashboard")
	assertRedirect(t, e.get("/", e.seedSession("student")), "/student/dashboard")
	// Unknown role values never reach a view.
	assertRedirect(t, e.get("/", e.seedSession("janitor")), "/login")
}

func TestLoginSuccess(t *testing.T) {
	e := newEnv(t)
	rec := e.postForm("/login", url.Values{"username": {"admin"}, "password": {"admin123"}}, nil)
	assertRedirect(t, rec, "/")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == e.cfg.SessionCookie && c.Value != "" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie on successful login")
	}

	assertRedirect(t, e.get("/", cookie), "/admin/dashboard")

	if rec := e.get("/admin/dashboard", cookie); !strings.Contains(rec.Body.String(), "Login successful") {
		t.Fatal("expected login notice on first page after login")
	}
}

func TestLoginFailure(t *testing.T) {
	e := newEnv(t)
	rec := e.postForm("/login", url.Values{"username": {"admin"}, "password": {"nope"}}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatal("expected failure notice")
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == e.cfg.SessionCookie && c.Value != "" {
			t.Fatal("expected no session cookie on failed login")
		}
	}
}

func TestLogoutLeavesUserAbsent(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("admin")

	assertRedirect(t, e.postForm("/logout", nil, cookie), "/login")

	// The persisted session is gone; the stale cookie no longer restores
	// anything and the root route lands on login.
	assertRedirect(t, e.get("/", cookie), "/login")
	assertRedirect(t, e.get("/admin/dashboard", cookie), "/login")
}

func TestBulkMarkEmptySelectionRejectedLocally(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("teacher")

	rec := e.postForm("/teacher/attendance", url.Values{"date": {"2026-08-30"}}, cookie)
	assertRedirect(t, rec, "/teacher/attendance")

	if e.fb.markCalls != 0 {
		t.Fatalf("expected zero backend calls, got %d", e.fb.markCalls)
	}
	if rec := e.get("/teacher/attendance", cookie); !strings.Contains(rec.Body.String(), "No attendance marked") {
		t.Fatal("expected no-attendance notice")
	}
}

func TestBulkMarkSubmitsSelection(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("teacher")

	form := url.Values{
		"date":      {"2026-08-30"},
		"status_11": {"present"},
		"status_12": {"absent"},
		"status_13": {"bogus"}, // ignored, not a valid status
	}
	assertRedirect(t, e.postForm("/teacher/attendance", form, cookie), "/teacher/attendance")

	if e.fb.markCalls != 1 {
		t.Fatalf("expected one bulk call, got %d", e.fb.markCalls)
	}
	if len(e.fb.marks) != 2 {
		t.Fatalf("expected two marks, got %+v", e.fb.marks)
	}
	for _, m := range e.fb.marks {
		if m.Date != "2026-08-30" {
			t.Fatalf("expected date on every mark, got %+v", m)
		}
		if m.Status != "present" && m.Status != "absent" {
			t.Fatalf("unexpected status %q", m.Status)
		}
	}
}

func TestBulkMarkRejectsBadDate(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("teacher")

	assertRedirect(t, e.postForm("/teacher/attendance",
		url.Values{"date": {"30/08/2026"}, "status_11": {"present"}}, cookie), "/teacher/attendance")
	if e.fb.markCalls != 0 {
		t.Fatalf("expected zero backend calls for invalid date, got %d", e.fb.markCalls)
	}
}

func TestDeleteOnlyAfterConfirmation(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("admin")

	rec := e.get("/admin/students/5/delete", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Are you sure") {
		t.Fatalf("expected confirmation page, got %d", rec.Code)
	}
	if e.fb.deleteCalls != 0 {
		t.Fatalf("confirmation page must not delete; got %d calls", e.fb.deleteCalls)
	}

	assertRedirect(t, e.postForm("/admin/students/5/delete", nil, cookie), "/admin/students")
	if e.fb.deleteCalls != 1 {
		t.Fatalf("expected exactly one delete call, got %d", e.fb.deleteCalls)
	}
}

func TestStudentCreateRoundTrip(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("admin")

	// A teacher must exist for the assigned-teacher join on the list page.
	form := url.Values{
		"username": {"teach"}, "password": {"pw"},
		"first_name": {"Tina"}, "last_name": {"Teach"},
	}
	assertRedirect(t, e.postForm("/admin/teachers", form, cookie), "/admin/teachers")
	if len(e.fb.teachers) != 1 {
		t.Fatalf("expected teacher created, got %+v", e.fb.teachers)
	}
	teacherID := e.fb.teachers[0].ID

	assertRedirect(t, e.postForm("/admin/students", url.Values{
		"name":             {"Ana Lopez"},
		"roll_number":      {"R-42"},
		"email":            {"ana@school.test"},
		"assigned_teacher": {"101"},
	}, cookie), "/admin/students")

	if len(e.fb.students) != 1 {
		t.Fatalf("expected student created, got %+v", e.fb.students)
	}
	created := e.fb.students[0]
	if created.Name != "Ana Lopez" || created.RollNumber != "R-42" || created.Email != "ana@school.test" {
		t.Fatalf("unexpected student payload %+v", created)
	}
	if created.AssignedTeacher == nil || *created.AssignedTeacher != teacherID {
		t.Fatalf("expected assigned teacher %d, got %+v", teacherID, created.AssignedTeacher)
	}

	body := e.get("/admin/students", cookie).Body.String()
	for _, want := range []string{"R-42", "Ana Lopez", "teach"} {
		if !strings.Contains(body, want) {
			t.Fatalf("student list missing %q", want)
		}
	}
}

func TestUnknownRouteRenders404(t *testing.T) {
	e := newEnv(t)
	rec := e.get("/no/such/page", nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "404") {
		t.Fatalf("expected 404 page, got %d", rec.Code)
	}
}

func TestBulkMarkSuccessShowsNotice(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("teacher")

	form := url.Values{"date": {"2026-08-30"}, "status_11": {"present"}}
	assertRedirect(t, e.postForm("/teacher/attendance", form, cookie), "/teacher/attendance")
	if rec := e.get("/teacher/attendance", cookie); !strings.Contains(rec.Body.String(), "Attendance submitted successfully") {
		t.Fatal("expected success notice after bulk mark")
	}
}

func TestBulkMarkBackendFailureShowsNotice(t *testing.T) {
	e := newEnv(t)
	cookie := e.seedSession("teacher")
	e.fb.markStatus = http.StatusInternalServerError

	form := url.Values{"date": {"2026-08-30"}, "status_11": {"present"}}
	assertRedirect(t, e.postForm("/teacher/attendance", form, cookie), "/teacher/attendance")

	if e.fb.markCalls != 1 {
		t.Fatalf("expected one attempt, got %d", e.fb.markCalls)
	}
	// The failure surfaces once as a notice and is not retried.
	if rec := e.get("/teacher/attendance", cookie); !strings.Contains(rec.Body.String(), "Failed to submit attendance") {
		t.Fatal("expected failure notice")
	}
	if e.fb.markCalls != 1 {
		t.Fatalf("expected no retry, got %d calls", e.fb.markCalls)
	}
}
