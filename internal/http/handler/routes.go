package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"

	"boardapi/docs"
	"boardapi/internal/http/middleware"
	"boardapi/internal/rbac"
	"boardapi/internal/service"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Team       service.TeamService
	Project    service.ProjectService
	Board      service.BoardService
	Milestone  service.MilestoneService
	Message    service.MessageService
	Attachment service.AttachmentService
	Flag       service.FlagService
	Support    service.SupportService
	Admin      service.AdminService
}

// Deps is everything RegisterRoutes wires into the router.
type Deps struct {
	DB    *sql.DB
	Redis redis.UniversalClient
	// Objects is the attachment store, checked by /health when set.
	Objects  Pinger
	Tokens   middleware.TokenParser
	Services Services
	Cookies  CookieOptions
	// LoginRatePerMin caps login attempts per client IP. Zero disables the limit.
	LoginRatePerMin int
	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// RegisterRoutes attaches every HTTP route to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	s := d.Services

	app.Get("/health", HealthCheck(d.DB, d.Redis, d.Objects))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(d.Metrics))
	}
	app.Get("/swagger/*", SwaggerUI())

	api := app.Group("/api/v1")
	api.Post("/auth/login", loginLimiter(d.LoginRatePerMin), Login(s.Auth, d.Cookies))
	api.Post("/auth/refresh", Refresh(s.Auth, d.Cookies))
	api.Post("/auth/logout", Logout(s.Auth, d.Cookies))

	v1 := authedRouter{r: api, auth: middleware.Authenticate(d.Tokens)}
	can := middleware.RequirePermission

	v1.Get("/auth/me", Me(s.Auth))

	v1.Get("/users", can(rbac.PermUserManage), ListUsers(s.User))
	v1.Post("/users", can(rbac.PermUserManage), CreateUser(s.User))
	v1.Patch("/users/:id", can(rbac.PermUserManage), UpdateUser(s.User))

	v1.Get("/teams", can(rbac.PermTeamRead), ListTeams(s.Team))
	v1.Post("/teams", can(rbac.PermTeamManage), CreateTeam(s.Team))
	v1.Get("/teams/:id", can(rbac.PermTeamRead), GetTeam(s.Team))
	v1.Patch("/teams/:id", can(rbac.PermTeamManage), UpdateTeam(s.Team))
	v1.Delete("/teams/:id", can(rbac.PermTeamManage), DeleteTeam(s.Team))
	v1.Post("/teams/:id/members", can(rbac.PermTeamManage), AddTeamMember(s.Team))
	v1.Delete("/teams/:id/members/:userId", can(rbac.PermTeamManage), RemoveTeamMember(s.Team))

	v1.Get("/projects", can(rbac.PermProjectRead), ListProjects(s.Project))
	v1.Post("/projects", can(rbac.PermProjectWrite), CreateProject(s.Project))
	v1.Get("/projects/:id", can(rbac.PermProjectRead), GetProject(s.Project))
	v1.Patch("/projects/:id", can(rbac.PermProjectWrite), UpdateProject(s.Project))
	v1.Delete("/projects/:id", can(rbac.PermProjectDelete), DeleteProject(s.Project))
	v1.Post("/projects/:id/archive", can(rbac.PermProjectWrite), ArchiveProject(s.Project))
	v1.Post("/projects/:id/restore", can(rbac.PermProjectWrite), RestoreProject(s.Project))
	v1.Post("/projects/:id/template", can(rbac.PermProjectWrite), SaveProjectAsTemplate(s.Project))

	v1.Get("/templates", can(rbac.PermProjectRead), ListTemplates(s.Project))
	v1.Post("/templates", can(rbac.PermProjectWrite), CreateTemplate(s.Project))
	v1.Delete("/templates/:id", can(rbac.PermProjectWrite), DeleteTemplate(s.Project))

	v1.Get("/projects/:id/board", can(rbac.PermProjectRead), GetBoard(s.Board))
	v1.Post("/projects/:id/columns", can(rbac.PermBoardWrite), CreateColumn(s.Board))
	v1.Patch("/columns/:id", can(rbac.PermBoardWrite), UpdateColumn(s.Board))
	v1.Post("/columns/:id/move", can(rbac.PermBoardWrite), MoveColumn(s.Board))
	v1.Delete("/columns/:id", can(rbac.PermBoardWrite), DeleteColumn(s.Board))

	v1.Post("/projects/:id/tasks", can(rbac.PermTaskWrite), CreateTask(s.Board))
	v1.Get("/projects/:id/tasks/archived", can(rbac.PermProjectRead), ListArchivedTasks(s.Board))
	v1.Get("/tasks/:id", can(rbac.PermProjectRead), GetTask(s.Board))
	v1.Patch("/tasks/:id", can(rbac.PermTaskWrite), UpdateTask(s.Board))
	v1.Delete("/tasks/:id", can(rbac.PermTaskWrite), DeleteTask(s.Board))
	v1.Post("/tasks/:id/move", can(rbac.PermTaskWrite), MoveTask(s.Board))
	v1.Post("/tasks/:id/archive", can(rbac.PermTaskWrite), ArchiveTask(s.Board))
	v1.Post("/tasks/:id/restore", can(rbac.PermTaskWrite), RestoreTask(s.Board))

	v1.Get("/tasks/:id/attachments", can(rbac.PermProjectRead), ListAttachments(s.Attachment))
	v1.Post("/tasks/:id/attachments", can(rbac.PermTaskWrite), UploadAttachment(s.Attachment))
	v1.Delete("/attachments/:id", can(rbac.PermTaskWrite), DeleteAttachment(s.Attachment))

	v1.Get("/projects/:id/milestones", can(rbac.PermProjectRead), ListMilestones(s.Milestone))
	v1.Post("/projects/:id/milestones", can(rbac.PermProjectWrite), CreateMilestone(s.Milestone))
	v1.Get("/milestones/:id", can(rbac.PermProjectRead), GetMilestone(s.Milestone))
	v1.Patch("/milestones/:id", can(rbac.PermProjectWrite), UpdateMilestone(s.Milestone))
	v1.Delete("/milestones/:id", can(rbac.PermProjectWrite), DeleteMilestone(s.Milestone))

	v1.Get("/projects/:id/messages", can(rbac.PermMessageRead), ListMessages(s.Message))
	v1.Post("/projects/:id/messages", can(rbac.PermMessageWrite), CreateMessage(s.Message))
	v1.Patch("/messages/:id", can(rbac.PermMessageWrite), UpdateMessage(s.Message))
	v1.Delete("/messages/:id", can(rbac.PermMessageWrite), DeleteMessage(s.Message))

	v1.Get("/feature-flags", can(rbac.PermFlagRead), EvaluateFlags(s.Flag))

	v1.Post("/support/tickets", can(rbac.PermTicketWrite), CreateTicket(s.Support))
	v1.Get("/support/tickets", can(rbac.PermTicketWrite), ListTickets(s.Support))
	v1.Get("/support/tickets/:id", can(rbac.PermTicketWrite), GetTicket(s.Support))
	v1.Post("/support/tickets/:id/replies", can(rbac.PermTicketWrite), ReplyTicket(s.Support))

	registerAdminRoutes(v1.Group("/admin"), s)
}

func registerAdminRoutes(r authedRouter, s Services) {
	admin := middleware.RequireAdmin

	r.Get("/plans", admin(rbac.PermAdminClientsRead), ListPlans(s.Admin))
	r.Post("/plans", admin(rbac.PermAdminPlansWrite), CreatePlan(s.Admin))
	r.Patch("/plans/:id", admin(rbac.PermAdminPlansWrite), UpdatePlan(s.Admin))

	r.Get("/clients", admin(rbac.PermAdminClientsRead), ListClients(s.Admin))
	r.Post("/clients", admin(rbac.PermAdminClientsWrite), CreateClient(s.Admin))
	r.Get("/clients/:id", admin(rbac.PermAdminClientsRead), GetClient(s.Admin))
	r.Patch("/clients/:id", admin(rbac.PermAdminClientsWrite), UpdateClient(s.Admin))
	r.Put("/clients/:id/license", admin(rbac.PermAdminLicensesWrite), SetLicense(s.Admin))

	r.Get("/feature-flags", admin(rbac.PermAdminFlagsWrite), ListFlags(s.Flag))
	r.Put("/feature-flags/:key", admin(rbac.PermAdminFlagsWrite), PutFlag(s.Flag))
	r.Delete("/feature-flags/:key", admin(rbac.PermAdminFlagsWrite), DeleteFlag(s.Flag))

	r.Get("/support/tickets", admin(rbac.PermAdminTicketsRead), AdminListTickets(s.Support))
	r.Get("/support/tickets/:id", admin(rbac.PermAdminTicketsRead), AdminGetTicket(s.Support))
	r.Patch("/support/tickets/:id", admin(rbac.PermAdminTicketsWrite), AdminUpdateTicket(s.Support))
	r.Post("/support/tickets/:id/replies", admin(rbac.PermAdminTicketsWrite), AdminReplyTicket(s.Support))

	r.Get("/profiles", admin(rbac.PermAdminProfiles), ListProfiles(s.Admin))
	r.Post("/profiles", admin(rbac.PermAdminProfiles), UpsertProfile(s.Admin))
	r.Delete("/profiles/:userId", admin(rbac.PermAdminProfiles), DeleteProfile(s.Admin))

	r.Get("/stats", admin(rbac.PermAdminStatsRead), AdminStats(s.Admin))
}

// authedRouter registers routes that run auth ahead of their own handlers. Binding
// it per route instead of on the group keeps unmatched paths a 404.
type authedRouter struct {
	r    fiber.Router
	auth fiber.Handler
}

func (a authedRouter) with(handlers []fiber.Handler) []fiber.Handler {
	return append([]fiber.Handler{a.auth}, handlers...)
}

func (a authedRouter) Get(path string, handlers ...fiber.Handler) { a.r.Get(path, a.with(handlers)...) }
func (a authedRouter) Post(path string, handlers ...fiber.Handler) {
	a.r.Post(path, a.with(handlers)...)
}
func (a authedRouter) Put(path string, handlers ...fiber.Handler) { a.r.Put(path, a.with(handlers)...) }
func (a authedRouter) Patch(path string, handlers ...fiber.Handler) {
	a.r.Patch(path, a.with(handlers)...)
}
func (a authedRouter) Delete(path string, handlers ...fiber.Handler) {
	a.r.Delete(path, a.with(handlers)...)
}

func (a authedRouter) Group(prefix string) authedRouter {
	return authedRouter{r: a.r.Group(prefix), auth: a.auth}
}

func loginLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return writeError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many login attempts")
		},
	})
}

// SwaggerUI serves the API docs with host and scheme taken from the request.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
