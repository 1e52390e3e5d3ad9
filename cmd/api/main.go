package main

import (
	"fmt"
	"net/http"

	"github.com/punchcard-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/punchcard-hr/attendance-backend-go/internal/handler/http"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/oauth"
	"github.com/punchcard-hr/attendance-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/punchcard-hr/attendance-backend-go/internal/service/auth"
	employeeService "github.com/punchcard-hr/attendance-backend-go/internal/service/employee"
	punchService "github.com/punchcard-hr/attendance-backend-go/internal/service/punch"
	timesheetService "github.com/punchcard-hr/attendance-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	punchSvc := punchService.NewPunchService(db, punchRepo, employeeRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, punchRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		authHandler,
		punchHandler,
		timesheetHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	punchJobs := cron.NewPunchJobs(punchRepo, cfg.Punch.StaleOpenHours)
	punchJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
