package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/services"
	"github.com/teamhub-dev/teamhub/internal/types"
)

const sweepInterval = 15 * time.Minute

// dueSoonWindow is how far ahead the sweep looks for upcoming due dates.
const dueSoonWindow = 24 * time.Hour

// Scheduler periodically sweeps for tasks approaching their due date and
// records a reminder notification for the assignee, once per task.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Start runs an immediate sweep, then repeats on a fixed interval until
// Stop is called.
func (s *Scheduler) Start() {
	log.Println("Starting reminder scheduler...")

	go func() {
		s.sweep()

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	log.Println("Stopping reminder scheduler...")
	s.cancel()
}

func (s *Scheduler) sweep() {
	now := time.Now()
	horizon := now.Add(dueSoonWindow)

	var tasks []models.Task

	err := db.DB.
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ? AND assigned_to_id IS NOT NULL", horizon, types.TaskStatusDone).
		Find(&tasks).Error

	if err != nil {
		log.Printf("Reminder sweep failed: %v", err)
		return
	}

	reminded := 0

	for _, task := range tasks {
		var count int64

		err := db.DB.Model(&models.Notification{}).
			Where("task_id = ? AND channel = ?", task.ID, "webhook").
			Count(&count).Error

		if err != nil {
			log.Printf("Reminder lookup failed for task %d: %v", task.ID, err)
			continue
		}

		if count > 0 {
			continue
		}

		message := fmt.Sprintf("Task %s (%s) is due %s", task.TaskCode, task.Title, task.DueDate.Format(time.RFC3339))

		status := "sent"
		sentAt := time.Now()

		err = services.SendWebhook("Task due soon", message, []services.SlackField{
			{Title: "Task", Value: task.Title, Short: true},
			{Title: "Priority", Value: task.Priority, Short: true},
		})

		if err != nil {
			log.Printf("Reminder webhook failed for task %d: %v", task.ID, err)
			status = "failed"
		}

		notification := models.Notification{
			UserID:  *task.AssignedToID,
			TaskID:  task.ID,
			Channel: "webhook",
			Status:  status,
			Message: message,
			SentAt:  &sentAt,
		}

		if err := db.DB.Create(&notification).Error; err != nil {
			log.Printf("Failed to record reminder for task %d: %v", task.ID, err)
			continue
		}

		reminded++
	}

	if reminded > 0 {
		log.Printf("Reminder sweep sent %d notifications", reminded)
	}
}
