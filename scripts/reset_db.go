package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hrms-backend/internal/config"
	"hrms-backend/internal/db"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/services"
)

// Tables in child-to-parent order. CASCADE covers the rest.
var resetTables = []string{
	"activity_logs",
	"attendance_correction_requests",
	"attendances",
	"leave_requests",
	"leave_balances",
	"salary_structures",
	"employee_profiles",
	"user_settings",
	"users",
	"companies",
}

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Dayflow Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: this deletes every user, profile, attendance, leave and salary record.")
	fmt.Println("The configured admin account and default company are recreated afterwards.")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	tx := db.NewTransactionManager(pool)
	err = tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		q := db.QueryerFromContext(ctx, pool)
		_, err := q.Exec(ctx, "TRUNCATE TABLE "+strings.Join(resetTables, ", ")+" RESTART IDENTITY CASCADE")
		return err
	})
	if err != nil {
		log.Fatalf("Failed to truncate tables: %v", err)
	}
	fmt.Printf("  Cleared %d tables and reset ID sequences\n", len(resetTables))

	companies := repositories.NewCompanyRepository(pool)
	if _, err := companies.Ensure(ctx, cfg.Company.DefaultName); err != nil {
		log.Fatalf("Failed to create default company: %v", err)
	}
	fmt.Printf("  Created company %q\n", cfg.Company.DefaultName)

	users := repositories.NewUserRepository(pool)
	authService := services.NewAuthService(tx, users, repositories.NewEmployeeProfileRepository(pool), companies,
		repositories.NewSettingsRepository(pool), nil, nil, nil, cfg.Company.DefaultName, nil)
	if err := authService.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	fmt.Printf("  Created admin user %s\n", cfg.Admin.Email)

	fmt.Println()
	fmt.Println("Database reset successful.")
}
