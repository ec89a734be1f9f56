package backend

// TokenPair is the credential pair issued by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Teacher is a teacher account as exposed by the backend user resource.
type Teacher struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
}

// Student is a student profile. AssignedTeacher references a teacher by id
// and may be null.
type Student struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	RollNumber      string `json:"roll_number"`
	Email           string `json:"email"`
	AssignedTeacher *int64 `json:"assigned_teacher"`
}

// AttendanceMark is one entry of a bulk-mark submission.
type AttendanceMark struct {
	Student int64  `json:"student"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

// AttendanceRecord is a stored attendance row, scoped to the caller by the
// backend. Display-only join fields come pre-resolved.
type AttendanceRecord struct {
	ID           int64  `json:"id"`
	Student      int64  `json:"student"`
	StudentName  string `json:"student_name"`
	RollNumber   string `json:"roll_number"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	MarkedByName string `json:"marked_by_name"`
}

// ReportRow is a per-student aggregate computed by the backend.
type ReportRow struct {
	Student    string  `json:"student"`
	TotalDays  int     `json:"total_days"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

// DashboardStats carries role-scoped counters; the backend only fills the
// fields matching the caller's role.
type DashboardStats struct {
	TotalStudents          int `json:"total_students"`
	TotalTeachers          int `json:"total_teachers"`
	TotalAttendanceRecords int `json:"total_attendance_records"`
	MyStudents             int `json:"my_students"`
	TotalMarked            int `json:"total_marked"`
}

// StudentStats is the student-scoped percentage/day-count aggregate served
// under the separate dashboard-stats/ path.
type StudentStats struct {
	AttendancePercentage float64 `json:"attendance_percentage"`
	TotalDays            int     `json:"total_days"`
}
