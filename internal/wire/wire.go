// Package wire provides dependency injection for the tpflow
// application. It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	cliadapter "github.com/example/tpflow/internal/adapters/cli"
	"github.com/example/tpflow/internal/adapters/filesystem"
	"github.com/example/tpflow/internal/adapters/sqlite"
	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/config"
	"github.com/example/tpflow/internal/db"
	"github.com/example/tpflow/internal/ports/primary"
)

var (
	cfg *config.Config

	clientService    primary.ClientService
	userService      primary.UserService
	projectService   primary.ProjectService
	workflowService  primary.WorkflowService
	taskService      primary.TaskService
	timeEntryService primary.TimeEntryService
	reviewService    primary.ReviewService
	documentService  primary.DocumentService
	dashboardService primary.DashboardService

	database *sql.DB
	once     sync.Once
)

// Configure sets the configuration services are built from. Call it
// before the first accessor; once services exist it has no effect.
func Configure(c *config.Config) {
	cfg = c
}

// Config returns the configuration services were (or will be) built
// from, loading defaults if Configure was never called.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Database returns the shared database handle.
func Database() *sql.DB {
	once.Do(initServices)
	return database
}

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// TimeEntryService returns the singleton TimeEntryService instance.
func TimeEntryService() primary.TimeEntryService {
	once.Do(initServices)
	return timeEntryService
}

// ReviewService returns the singleton ReviewService instance.
func ReviewService() primary.ReviewService {
	once.Do(initServices)
	return reviewService
}

// DocumentService returns the singleton DocumentService instance.
func DocumentService() primary.DocumentService {
	once.Do(initServices)
	return documentService
}

// DashboardService returns the singleton DashboardService instance.
func DashboardService() primary.DashboardService {
	once.Do(initServices)
	return dashboardService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	if cfg == nil {
		loaded, err := config.Load("")
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
		cfg = loaded
	}

	var err error
	database, err = db.Open(cfg.DB.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := db.InitSchema(database); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	blobs, err := filesystem.NewBlobStore(cfg.Storage.DocumentsDir)
	if err != nil {
		log.Fatalf("failed to initialize document storage: %v", err)
	}

	// Repository adapters (secondary ports). Mutating repositories
	// share one audit log writer.
	logWriter := sqlite.NewLogWriterAdapter(database)

	clientRepo := sqlite.NewClientRepository(database, logWriter)
	userRepo := sqlite.NewUserRepository(database)
	projectRepo := sqlite.NewProjectRepository(database, logWriter)
	templateRepo := sqlite.NewWorkflowTemplateRepository(database)
	stepRepo := sqlite.NewWorkflowStepRepository(database, logWriter)
	taskRepo := sqlite.NewTaskRepository(database, logWriter)
	entryRepo := sqlite.NewTimeEntryRepository(database)
	reviewRepo := sqlite.NewReviewRepository(database, logWriter)
	documentRepo := sqlite.NewDocumentRepository(database, logWriter)
	activityRepo := sqlite.NewActivityLogRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)

	// Services (primary port implementations)
	clientService = app.NewClientService(clientRepo)
	userService = app.NewUserService(userRepo)
	projectService = app.NewProjectService(projectRepo, clientRepo, userRepo, activityRepo)
	workflowService = app.NewWorkflowService(templateRepo, stepRepo, projectRepo, userRepo)
	taskService = app.NewTaskService(taskRepo, projectRepo, userRepo)
	timeEntryService = app.NewTimeEntryService(entryRepo, projectRepo, taskRepo)
	reviewService = app.NewReviewService(reviewRepo, projectRepo, stepRepo, userRepo)
	documentService = app.NewDocumentService(documentRepo, projectRepo, blobs)
	dashboardService = app.NewDashboardService(statsRepo)
}

// ClientAdapter returns a new ClientAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ClientAdapter() *cliadapter.ClientAdapter {
	return ClientAdapterWithOutput(os.Stdout)
}

// ClientAdapterWithOutput returns a new ClientAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ClientAdapterWithOutput(out io.Writer) *cliadapter.ClientAdapter {
	once.Do(initServices)
	return cliadapter.NewClientAdapter(clientService, out)
}

// ProjectAdapter returns a new ProjectAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ProjectAdapter() *cliadapter.ProjectAdapter {
	return ProjectAdapterWithOutput(os.Stdout)
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ProjectAdapterWithOutput(out io.Writer) *cliadapter.ProjectAdapter {
	once.Do(initServices)
	return cliadapter.NewProjectAdapter(projectService, workflowService, out)
}
