package services

import "testing"

func standardPeriods() []PeriodSlot {
	return []PeriodSlot{
		{Number: 1, StartTime: "08:00", EndTime: "08:45", Type: PeriodTypeRegular},
		{Number: 2, StartTime: "08:45", EndTime: "09:30", Type: PeriodTypeRegular},
		{Number: 3, StartTime: "09:30", EndTime: "09:45", Type: PeriodTypeBreak},
		{Number: 4, StartTime: "09:45", EndTime: "10:30", Type: PeriodTypeRegular},
	}
}

func TestGenerateTimetables_NoDoubleBooking(t *testing.T) {
	req := TimetableRequest{
		Teachers: []TeacherResource{
			{ID: "t1", Name: "Asha", Subjects: []string{"Math", "Physics"}},
			{ID: "t2", Name: "Brian", Subjects: []string{"English"}},
		},
		Classes: []ClassGroup{
			{Name: "8", Sections: []string{"A", "B"}},
			{Name: "9", Sections: []string{"A"}},
		},
		WorkingDays:         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 5, "Physics": 4, "English": 5},
	}

	result := GenerateTimetables(req)

	seen := make(map[SlotKey]string)
	for _, schedule := range result.Schedules {
		for _, e := range schedule.Entries {
			key := SlotKey{Day: e.Day, Period: e.PeriodNum, TeacherID: e.TeacherID}
			if prev, dup := seen[key]; dup {
				t.Fatalf("teacher %s booked in %s/%d for both %s and %s-%s",
					e.TeacherID, e.Day, e.PeriodNum, prev, schedule.ClassName, schedule.Section)
			}
			seen[key] = schedule.ClassName + "-" + schedule.Section
		}
	}
}

func TestGenerateTimetables_TeacherMustTeachSubject(t *testing.T) {
	req := TimetableRequest{
		Teachers: []TeacherResource{
			{ID: "t1", Name: "Asha", Subjects: []string{"Math"}},
			{ID: "t2", Name: "Brian", Subjects: []string{"English"}},
		},
		Classes:             []ClassGroup{{Name: "7", Sections: []string{"A"}}},
		WorkingDays:         []string{"Monday", "Tuesday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 3, "English": 3},
	}

	bySubject := map[string]string{"Math": "t1", "English": "t2"}
	result := GenerateTimetables(req)
	for _, schedule := range result.Schedules {
		for _, e := range schedule.Entries {
			if bySubject[e.Subject] != e.TeacherID {
				t.Errorf("%s assigned to teacher %s who does not teach it", e.Subject, e.TeacherID)
			}
		}
	}
}

func TestGenerateTimetables_QuotaNeverExceeded(t *testing.T) {
	quota := map[string]int{"Math": 2, "English": 3, "Biology": 4}
	req := TimetableRequest{
		Teachers: []TeacherResource{
			{ID: "t1", Name: "Asha", Subjects: []string{"Math", "Biology"}},
			{ID: "t2", Name: "Brian", Subjects: []string{"English"}},
		},
		Classes:             []ClassGroup{{Name: "8", Sections: []string{"A"}}},
		WorkingDays:         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: quota,
	}

	result := GenerateTimetables(req)
	counts := make(map[string]int)
	for _, e := range result.Schedules[0].Entries {
		counts[e.Subject]++
	}
	for subject, n := range counts {
		if n > quota[subject] {
			t.Errorf("%s assigned %d periods, quota is %d", subject, n, quota[subject])
		}
	}
}

func TestGenerateTimetables_BreaksNeverAssigned(t *testing.T) {
	req := TimetableRequest{
		Teachers:            []TeacherResource{{ID: "t1", Name: "Asha", Subjects: []string{"Math"}}},
		Classes:             []ClassGroup{{Name: "8", Sections: []string{"A"}}},
		WorkingDays:         []string{"Monday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 10},
	}

	result := GenerateTimetables(req)
	for _, e := range result.Schedules[0].Entries {
		if e.PeriodNum == 3 {
			t.Errorf("break period 3 was assigned %s", e.Subject)
		}
	}
	// One regular teacher, three regular slots: all of them Math.
	if got := len(result.Schedules[0].Entries); got != 3 {
		t.Errorf("entries = %d, want 3", got)
	}
}

func TestGenerateTimetables_SingleTeacherShortfall(t *testing.T) {
	req := TimetableRequest{
		Teachers:            []TeacherResource{{ID: "t1", Name: "Asha", Subjects: []string{"Math"}}},
		Classes:             []ClassGroup{{Name: "8", Sections: []string{"A"}}},
		WorkingDays:         []string{"Monday", "Tuesday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 3, "Science": 3},
	}

	result := GenerateTimetables(req)
	schedule := result.Schedules[0]

	mathCount := 0
	for _, e := range schedule.Entries {
		if e.Subject == "Science" {
			t.Fatal("Science assigned with no teacher covering it")
		}
		if e.Subject == "Math" {
			mathCount++
		}
	}
	if mathCount != 3 {
		t.Errorf("Math periods = %d, want quota of 3", mathCount)
	}
	// Six regular cells over two days, three filled.
	if schedule.Unassigned != 3 {
		t.Errorf("Unassigned = %d, want 3", schedule.Unassigned)
	}
	if result.UnassignedCells != 3 {
		t.Errorf("result.UnassignedCells = %d, want 3", result.UnassignedCells)
	}
}

func TestGenerateTimetables_Deterministic(t *testing.T) {
	req := TimetableRequest{
		Teachers: []TeacherResource{
			{ID: "t1", Name: "Asha", Subjects: []string{"Math", "English"}},
			{ID: "t2", Name: "Brian", Subjects: []string{"Math", "Biology"}},
		},
		Classes:             []ClassGroup{{Name: "8", Sections: []string{"A", "B"}}},
		WorkingDays:         []string{"Monday", "Tuesday", "Wednesday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 3, "English": 3, "Biology": 3},
	}

	first := GenerateTimetables(req)
	second := GenerateTimetables(req)

	if len(first.Schedules) != len(second.Schedules) {
		t.Fatal("schedule count differs between runs")
	}
	for i := range first.Schedules {
		a, b := first.Schedules[i].Entries, second.Schedules[i].Entries
		if len(a) != len(b) {
			t.Fatalf("schedule %d entry count differs", i)
		}
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("entry %d/%d differs between runs: %+v vs %+v", i, j, a[j], b[j])
			}
		}
	}
}

func TestGenerateTimetables_SpreadsSubjects(t *testing.T) {
	// With equal quotas and dedicated teachers, the ratio tie-break
	// should rotate subjects instead of clustering one at the start.
	req := TimetableRequest{
		Teachers: []TeacherResource{
			{ID: "t1", Name: "Asha", Subjects: []string{"Math"}},
			{ID: "t2", Name: "Brian", Subjects: []string{"English"}},
		},
		Classes:             []ClassGroup{{Name: "8", Sections: []string{"A"}}},
		WorkingDays:         []string{"Monday"},
		Periods:             standardPeriods(),
		SubjectHoursPerWeek: map[string]int{"Math": 2, "English": 2},
	}

	entries := GenerateTimetables(req).Schedules[0].Entries
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Subject == entries[1].Subject {
		t.Errorf("first two periods both %s, want alternation", entries[0].Subject)
	}
}

func TestTeachesSubject(t *testing.T) {
	teacher := TeacherResource{ID: "t1", Name: "Asha", Subjects: []string{"Math", "Physics"}}
	if !TeachesSubject(teacher, "Physics") {
		t.Error("expected Physics to be covered")
	}
	if TeachesSubject(teacher, "History") {
		t.Error("History should not be covered")
	}
}
