package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-approval-flow/internal/handler"
	"go-approval-flow/internal/repository"
	"go-approval-flow/internal/service"
	"go-approval-flow/internal/ws"
	"go-approval-flow/pkg/dataset"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Load configuration dataset. Missing or broken files degrade to
	// empty collections; the server still starts.
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	ds := dataset.Load(dataDir)
	for _, warning := range ds.Warnings {
		log.Printf("Warning: dataset: %s", warning)
	}
	log.Printf("Dataset loaded: %d roles, %d processes", len(ds.Roles), len(ds.Processes))

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	directory := repository.NewRoleDirectory(ds.Roles)
	processRepo := repository.NewProcessRepo(ds.Processes)

	workflowService := service.NewWorkflowService(directory, processRepo, wsHub)
	dragController := service.NewDragController(workflowService)
	authService := service.NewAuthorizationService(ds.Authorization, wsHub)

	roleHandler := handler.NewRoleHandler(directory)
	processHandler := handler.NewProcessHandler(workflowService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	dragHandler := handler.NewDragHandler(dragController)
	authHandler := handler.NewAuthorizationHandler(authService)

	// Select the first process up front, same as the UI does on load.
	if processes := workflowService.Processes(); len(processes) > 0 {
		if _, diagnostics, err := workflowService.SelectProcess(processes[0].ID); err == nil {
			log.Printf("Selected process %q (%d unresolved nodes)", processes[0].Name, len(diagnostics))
		}
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Approval Flow Admin v1.0",
	})

	// Middleware
	app.Use(logger.New())    // Logging request
	app.Use(recover.New())   // Panic recovery
	app.Use(cors.New())      // CORS
	app.Use(requestid.New()) // Request IDs for the access log

	// 6. Routes
	api := app.Group("/api/v1")

	// Role palette
	api.Get("/roles", roleHandler.GetRoles)
	api.Get("/roles/suggest", roleHandler.SuggestRoles)

	// Process templates
	api.Get("/processes", processHandler.GetProcesses)
	api.Post("/processes/:id/select", processHandler.SelectProcess)

	// Workflow editing
	api.Get("/workflow/nodes", workflowHandler.GetNodes)
	api.Post("/workflow/nodes", workflowHandler.AppendNode)
	api.Post("/workflow/nodes/insert", workflowHandler.InsertNode)
	api.Delete("/workflow/nodes/:id", workflowHandler.DeleteNode)
	api.Get("/workflow/nodes/:id/employees", workflowHandler.GetNodeEmployees)
	api.Post("/workflow/nodes/:id/employees", workflowHandler.AddEmployee)
	api.Get("/workflow/diagnostics", workflowHandler.GetDiagnostics)
	api.Post("/workflow/save", workflowHandler.Save)
	api.Get("/workflow/export", workflowHandler.Export)

	// Drag-and-drop state machine
	api.Get("/drag", dragHandler.Status)
	api.Post("/drag/start", dragHandler.Start)
	api.Post("/drag/enter", dragHandler.Enter)
	api.Post("/drag/leave", dragHandler.Leave)
	api.Post("/drag/drop-canvas", dragHandler.DropOnCanvas)
	api.Post("/drag/drop-node", dragHandler.DropOnNode)
	api.Post("/drag/cancel", dragHandler.Cancel)

	// Authorization panel sessions
	api.Post("/authorizations/sessions", authHandler.OpenSession)
	api.Get("/authorizations/sessions/:id/view", authHandler.GetView)
	api.Post("/authorizations/sessions/:id/toggle", authHandler.Toggle)
	api.Post("/authorizations/sessions/:id/move-group", authHandler.MoveGroup)
	api.Post("/authorizations/sessions/:id/move-filtered", authHandler.MoveFiltered)
	api.Post("/authorizations/sessions/:id/clear", authHandler.Clear)
	api.Post("/authorizations/sessions/:id/save", authHandler.Save)
	api.Delete("/authorizations/sessions/:id", authHandler.CloseSession)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
