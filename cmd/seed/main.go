package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/database"
	"github.com/stemsi/schoolcrm-backend/internal/logger"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/service"
)

const seedPassword = "password123"

func main() {
	studentCount := flag.Int("students", 50, "number of demo students to create")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	hasher, err := service.NewPasswordHasher(cfg.PasswordStorage, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid PASSWORD_STORAGE")
	}

	users := repository.NewUserRepository(pool)
	teacherService := service.NewUserService(model.RoleTeacher, users, hasher, log)
	studentService := service.NewUserService(model.RoleStudent, users, hasher, log)
	classService := service.NewClassService(repository.NewClassRepository(pool), users, log)

	fmt.Println("=== Seeding demo data ===")

	// Reuse the demo teacher when a previous run created it.
	teacher, err := users.GetByEmail(ctx, "teacher@school.com")
	if errors.Is(err, repository.ErrNotFound) {
		teacher, err = teacherService.Create(ctx, service.UserInput{
			Name:     "Demo Teacher",
			Email:    "teacher@school.com",
			Password: seedPassword,
			Gender:   model.GenderOther,
			Salary:   4000,
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare demo teacher")
	}
	fmt.Printf("Teacher: %s (%s)\n", teacher.Name, teacher.ID)

	studentIDs := make([]string, 0, *studentCount)
	success := 0
	for i := 1; i <= *studentCount; i++ {
		student, err := studentService.Create(ctx, service.UserInput{
			Name:     fmt.Sprintf("Student %03d", i),
			Email:    fmt.Sprintf("student%03d@school.com", i),
			Password: seedPassword,
			FeesPaid: float64(100 * (i%5 + 1)),
		})
		if err != nil {
			if errors.Is(err, service.ErrEmailExists) {
				continue
			}
			log.Error().Err(err).Int("n", i).Msg("Failed to create student")
			continue
		}
		studentIDs = append(studentIDs, student.ID)
		success++
	}

	for _, in := range []service.ClassInput{
		{Name: "Mathematics", Description: "Algebra and geometry", Fee: 1200},
		{Name: "Science", Description: "Physics, chemistry and biology"},
	} {
		in.TeacherID = teacher.ID
		in.Students = studentIDs
		class, err := classService.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("class", in.Name).Msg("Failed to create class")
		}
		fmt.Printf("Class: %s (%s)\n", class.Name, class.ID)
	}

	fmt.Printf("Seeding completed. %d/%d students created. Password for all demo accounts: %s\n",
		success, *studentCount, seedPassword)
}
