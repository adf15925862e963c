package jobs

import (
	"fmt"
	"log"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/custosapp/custos_backend/notifications"
)

// NotifyPendingReviews emails each test author a count of submissions
// still waiting on manual theory grading.
func NotifyPendingReviews() {
	log.Println("Running job: NotifyPendingReviews...")

	type pendingRow struct {
		TestID   string
		Title    string
		FullName string
		Email    string
		Pending  int64
	}

	var rows []pendingRow
	err := database.DB.Model(&models.Submission{}).
		Select("tests.id as test_id, tests.title, users.full_name, users.email, count(submissions.id) as pending").
		Joins("JOIN tests ON tests.id = submissions.test_id").
		Joins("JOIN users ON users.id = tests.created_by_id").
		Where("submissions.status = ?", models.SubmissionStatusPending).
		Group("tests.id, tests.title, users.full_name, users.email").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Error checking for pending reviews: %v", err)
		return
	}

	if len(rows) == 0 {
		return
	}

	for _, row := range rows {
		emailSubject := "Submissions waiting for review"
		emailBody := fmt.Sprintf(
			"<h1>Pending reviews</h1><p>Hi %s,</p><p>%d submission(s) for \"%s\" contain theory answers waiting for your grade.</p>",
			row.FullName, row.Pending, row.Title,
		)
		go notifications.SendEmail(row.FullName, row.Email, emailSubject, emailBody)
	}

	log.Printf("Notified %d teacher(s) of pending reviews.", len(rows))
}
