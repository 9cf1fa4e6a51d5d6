package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/kgnit/employee-tasks/config"
	"github.com/kgnit/employee-tasks/pkg/helpers"
)

type seedTask struct {
	title       string
	description string
	date        string
	category    string
	status      string // newTask, active, completed, failed
}

type seedEmployee struct {
	firstName string
	email     string
	password  string
	tasks     []seedTask
}

var employees = []seedEmployee{
	{
		firstName: "Ruhith",
		email:     "e@e.com",
		password:  "123",
		tasks: []seedTask{
			{"Prepare monthly report", "Compile the sales numbers for last month", "2024-10-05", "reporting", "active"},
			{"Update client records", "Sync the CRM entries with the new contracts", "2024-10-08", "crm", "newTask"},
			{"Fix login page bug", "Investigate the reported session timeout issue", "2024-10-01", "dev", "completed"},
		},
	},
	{
		firstName: "Sneha",
		email:     "employee2@example.com",
		password:  "123",
		tasks: []seedTask{
			{"Design landing page", "Draft the hero section for the new campaign", "2024-10-10", "design", "newTask"},
			{"Review onboarding docs", "Check the handbook for outdated screenshots", "2024-10-03", "docs", "failed"},
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Admin account
	adminHash, err := helpers.HashPassword("123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var adminID string
	err = db.QueryRow(`
		INSERT INTO admins (first_name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, "Admin", "admin@me.com", adminHash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=admin@me.com password=123\n", adminID)

	for _, emp := range employees {
		hash, err := helpers.HashPassword(emp.password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var empID string
		err = db.QueryRow(`
			INSERT INTO employees (first_name, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
			RETURNING id
		`, emp.firstName, emp.email, hash).Scan(&empID)
		if err != nil {
			log.Fatalf("failed to seed employee %s: %v", emp.email, err)
		}

		for _, t := range emp.tasks {
			flags := map[string]bool{"newTask": false, "active": false, "completed": false, "failed": false}
			flags[t.status] = true
			if _, err := db.Exec(`
				INSERT INTO tasks (employee_id, title, description, task_date, category, new_task, active, completed, failed)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, empID, t.title, t.description, t.date, t.category,
				flags["newTask"], flags["active"], flags["completed"], flags["failed"]); err != nil {
				log.Fatalf("failed to seed task %q: %v", t.title, err)
			}
		}

		if _, err := db.Exec(`
			UPDATE employees e
			SET tasks_active    = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND active),
			    tasks_new       = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND new_task),
			    tasks_completed = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND completed),
			    tasks_failed    = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND failed)
			WHERE e.id = $1
		`, empID); err != nil {
			log.Fatalf("failed to refresh counts for %s: %v", emp.email, err)
		}
		fmt.Printf("seeded employee: id=%s email=%s password=%s tasks=%d\n", empID, emp.email, emp.password, len(emp.tasks))
	}
}
