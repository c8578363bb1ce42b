package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nixpig/slideworker/internal/artifact"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/relay"
)

const (
	// maxUploadBytes bounds a single slide upload.
	maxUploadBytes = 4 << 30

	// pingInterval keeps idle WebSocket connections alive through proxies.
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// gateway serves the HTTP and WebSocket surface browsers talk to.
type gateway struct {
	app      *fiber.App
	manager  *jobmanager.Manager
	store    artifact.Store
	validate *validator.Validate
	logger   *slog.Logger
}

type submitRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

func newGateway(
	manager *jobmanager.Manager,
	store artifact.Store,
	log *slog.Logger,
) *gateway {
	g := &gateway{
		manager:  manager,
		store:    store,
		validate: validator.New(),
		logger:   log,
	}

	g.app = fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})

	g.app.Use(recover.New())
	g.app.Use(logger.New(logger.Config{
		Format: "${status} ${latency} ${method} ${path}\n",
		Output: slog.NewLogLogger(log.Handler(), slog.LevelDebug).Writer(),
	}))
	g.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	g.app.Get("/health", func(c *fiber.Ctx) error {
		return respondOK(c, fiber.Map{"status": "ok"})
	})

	g.app.Post("/upload", g.upload)
	g.app.Post("/patch", g.submit(jobmanager.JobTypePatching))
	g.app.Post("/predict", g.submit(jobmanager.JobTypePrediction))
	g.app.Post("/merge", g.submit(jobmanager.JobTypeMerging))
	g.app.Get("/job-status/:id", g.jobStatus)
	g.app.Get("/jobs", g.listJobs)
	g.app.Post("/admin/cleanup-expired-jobs", g.cleanupExpired)
	g.app.Get("/get-csv", g.download(artifact.ResultCSV))
	g.app.Get("/get-img", g.download(artifact.ResultImage))

	g.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("origin", c.Get(fiber.HeaderOrigin))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	g.app.Get("/ws", websocket.New(g.watch))

	return g
}

// submit handles POST /patch, /predict and /merge.
func (g *gateway) submit(jobType jobmanager.JobType) fiber.Handler {
	started := jobType.String()
	started = strings.ToUpper(started[:1]) + started[1:] + " started"

	return func(c *fiber.Ctx) error {
		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, "Invalid request body", nil)
		}

		if err := g.validate.Struct(&req); err != nil {
			return validationError(c, "No filename provided", formatValidationErrors(err))
		}

		id, err := g.manager.Submit(c.UserContext(), jobType, req.Filename)
		if err != nil {
			return g.submitError(c, err)
		}

		return respondOK(c, fiber.Map{"job_id": id, "message": started})
	}
}

func (g *gateway) submitError(c *fiber.Ctx, err error) error {
	var validationErr *jobmanager.ValidationError

	switch {
	case errors.Is(err, artifact.ErrNotFound):
		return validationError(c, "File not found", nil)

	case errors.As(err, &validationErr):
		return validationError(c, validationErr.Reason, fiber.Map{
			validationErr.Field: validationErr.Reason,
		})

	case errors.Is(err, jobmanager.ErrShuttingDown):
		return unavailable(c, err.Error())

	default:
		g.logger.Error("submit job", "err", err)
		return serviceError(c, "internal server error")
	}
}

// jobStatus handles GET /job-status/:id
func (g *gateway) jobStatus(c *fiber.Ctx) error {
	rec, err := g.manager.Query(c.Params("id"))

	switch {
	case errors.Is(err, jobmanager.ErrJobExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"success": false,
			"code":    codeExpired,
			"message": "Job expired and has been cleaned up",
			"job":     rec,
		})

	case errors.Is(err, jobmanager.ErrJobNotFound):
		return notFound(c, "Job not found")

	case err != nil:
		g.logger.Error("query job", "err", err)
		return serviceError(c, "internal server error")
	}

	return respondOK(c, fiber.Map{"job": rec})
}

// listJobs handles GET /jobs
func (g *gateway) listJobs(c *fiber.Ctx) error {
	return respondOK(c, fiber.Map{"jobs": g.manager.List()})
}

// cleanupExpired handles POST /admin/cleanup-expired-jobs
func (g *gateway) cleanupExpired(c *fiber.Ctx) error {
	n := g.manager.SweepAll()

	g.logger.Info("swept expired jobs", "evicted", n)

	return respondOK(c, fiber.Map{
		"evicted": n,
		"message": fmt.Sprintf("Cleaned up %d expired jobs", n),
	})
}

// upload handles POST /upload
func (g *gateway) upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return validationError(c, "No file", nil)
	}

	name := filepath.Base(fh.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return validationError(c, "No selected file", nil)
	}

	if !artifact.Allowed(name) {
		return validationError(c, "Invalid file type", fiber.Map{
			"allowed": artifact.AllowedExtensions,
		})
	}

	f, err := fh.Open()
	if err != nil {
		g.logger.Error("open upload", "filename", name, "err", err)
		return serviceError(c, "File upload failed")
	}
	defer f.Close()

	if err := g.store.Put(c.UserContext(), name, f); err != nil {
		g.logger.Error("store upload", "filename", name, "err", err)
		return serviceError(c, "File upload failed")
	}

	g.logger.Info("artifact uploaded", "filename", name, "size", fh.Size)

	return respondOK(c, fiber.Map{
		"filename": name,
		"message":  "File uploaded successfully",
	})
}

// download handles GET /get-csv and /get-img, serving the result file that
// path derives from the filename query parameter.
func (g *gateway) download(path func(string) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Query("filename")
		if filename == "" {
			return validationError(c, "No filename provided", nil)
		}

		if err := artifact.ValidateName(filename); err != nil {
			return validationError(c, err.Error(), nil)
		}

		name := path(filename)

		rc, err := g.store.Open(c.UserContext(), name)
		switch {
		case errors.Is(err, artifact.ErrNotFound):
			return notFound(c, "File not found")

		case errors.Is(err, artifact.ErrInvalidName):
			return validationError(c, err.Error(), nil)

		case err != nil:
			g.logger.Error("open result", "name", name, "err", err)
			return serviceError(c, "internal server error")
		}

		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		c.Set(fiber.HeaderPragma, "no-cache")
		c.Set(fiber.HeaderExpires, "0")
		c.Attachment(filepath.Base(name))

		return c.SendStream(rc)
	}
}

// watch pushes job updates to a WebSocket client until either side goes
// away. Only this goroutine writes to c.
func (g *gateway) watch(c *websocket.Conn) {
	jobID := c.Query("job_id")
	log := g.logger.With("remote", c.RemoteAddr().String(), "job_id", jobID)

	sub := g.manager.Subscribe(jobID)
	defer sub.Close()

	log.Info("websocket client connected", "origin", c.Locals("origin"))

	pongs := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
				) {
					log.Debug("websocket read", "err", err)
				}
				return
			}

			if strings.TrimSpace(string(msg)) == "ping" {
				select {
				case pongs <- struct{}{}:
				default:
				}
			}
		}
	}()

	defer func() {
		c.Close()
		<-done
		log.Info("websocket client disconnected", "dropped", sub.Dropped())
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	write := func(messageType int, data []byte) error {
		c.SetWriteDeadline(time.Now().Add(writeTimeout))
		return c.WriteMessage(messageType, data)
	}

	for {
		select {
		case <-done:
			return

		case <-pongs:
			if err := write(websocket.TextMessage, []byte("pong")); err != nil {
				return
			}

		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}

		case e, ok := <-sub.Events():
			if !ok {
				write(websocket.CloseMessage, websocket.FormatCloseMessage(
					websocket.CloseGoingAway,
					"server shutting down",
				))
				return
			}

			payload, err := relay.Encode(e)
			if err != nil {
				log.Warn("encode job update", "id", e.ID, "err", err)
				continue
			}

			if err := write(websocket.TextMessage, payload); err != nil {
				log.Debug("websocket write", "err", err)
				return
			}
		}
	}
}
