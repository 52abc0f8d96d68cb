package helpdesk

import (
	"net/http"

	"github.com/goliatone/go-router"
)

// RequireAuth rejects anonymous requests with a 401 before the handler
// runs. Handlers behind it can still call the resolver for the identity.
func RequireAuth(resolver IdentityResolver) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if resolver.Resolve(ctx) == nil {
				return ctx.JSON(http.StatusUnauthorized, Result{Message: MsgUnauthorized})
			}
			return next(ctx)
		}
	}
}

// ControllerRoutes holds the mount points for the auth and ticket routes.
type ControllerRoutes struct {
	Register string
	Login    string
	Logout   string
	Me       string
	Tickets  string
}

// Controller exposes the auth and ticket flows over HTTP, binding form or
// JSON payloads and answering with the flow Result.
type Controller struct {
	Logger   Logger
	Auth     *AuthActions
	Tickets  *TicketActions
	Resolver IdentityResolver
	Routes   *ControllerRoutes
}

type ControllerOption func(*Controller) *Controller

// NewController builds a Controller, panicking on missing collaborators
// since route registration without them is a programming error.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: defLogger{},
		Routes: &ControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Logout:   "/logout",
			Me:       "/me",
			Tickets:  "/tickets",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auth == nil {
		panic("Missing AuthActions in helpdesk controller...")
	}

	if c.Tickets == nil {
		panic("Missing TicketActions in helpdesk controller...")
	}

	if c.Resolver == nil {
		panic("Missing IdentityResolver in helpdesk controller...")
	}

	return c
}

func WithAuthActions(a *AuthActions) ControllerOption {
	return func(c *Controller) *Controller {
		c.Auth = a
		return c
	}
}

func WithTicketActions(t *TicketActions) ControllerOption {
	return func(c *Controller) *Controller {
		c.Tickets = t
		return c
	}
}

func WithResolver(r IdentityResolver) ControllerOption {
	return func(c *Controller) *Controller {
		c.Resolver = r
		return c
	}
}

func WithControllerLogger(l Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func WithControllerRoutes(routes *ControllerRoutes) ControllerOption {
	return func(c *Controller) *Controller {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

// RegisterRoutes mounts the auth and ticket endpoints on the router.
func RegisterRoutes[T any](app router.Router[T], opts ...ControllerOption) {
	controller := NewController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.get")

	app.Get(controller.Routes.Me, RequireAuth(controller.Resolver)(controller.MeShow)).
		SetName("me.get")

	app.Get(controller.Routes.Tickets, controller.TicketList).
		SetName("tickets.list")

	app.Post(controller.Routes.Tickets, controller.TicketCreate).
		SetName("tickets.create")

	app.Get(controller.Routes.Tickets+"/:id", controller.TicketShow).
		SetName("tickets.show")

	app.Post(controller.Routes.Tickets+"/:id/close", controller.TicketClose).
		SetName("tickets.close")
}

func (a *Controller) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("RegisterPost bind error: %s", err)
		return ctx.JSON(http.StatusBadRequest, Result{Message: MsgAllFieldsRequired})
	}

	result := a.Auth.Register(ctx, *payload)
	return ctx.JSON(statusFor(result), result)
}

func (a *Controller) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("LoginPost bind error: %s", err)
		return ctx.JSON(http.StatusBadRequest, Result{Message: MsgEmailPasswordRequired})
	}

	result := a.Auth.Login(ctx, *payload)
	return ctx.JSON(statusFor(result), result)
}

func (a *Controller) LogOut(ctx router.Context) error {
	result := a.Auth.Logout(ctx)
	return ctx.JSON(statusFor(result), result)
}

func (a *Controller) MeShow(ctx router.Context) error {
	// RequireAuth already rejected anonymous requests
	return ctx.JSON(http.StatusOK, map[string]any{
		"user": a.Resolver.Resolve(ctx),
	})
}

func (a *Controller) TicketList(ctx router.Context) error {
	records := a.Tickets.List(ctx)
	return ctx.JSON(http.StatusOK, map[string]any{
		"tickets": records,
	})
}

func (a *Controller) TicketShow(ctx router.Context) error {
	ticket := a.Tickets.Get(ctx, ctx.Param("id", ""))
	if ticket == nil {
		return ctx.JSON(http.StatusNotFound, Result{Message: "Ticket not found."})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"ticket": ticket,
	})
}

func (a *Controller) TicketCreate(ctx router.Context) error {
	payload := new(CreateTicketRequest)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("TicketCreate bind error: %s", err)
		return ctx.JSON(http.StatusBadRequest, Result{Message: MsgAllFieldsRequired})
	}

	result := a.Tickets.Create(ctx, *payload)
	return ctx.JSON(statusFor(result), result)
}

func (a *Controller) TicketClose(ctx router.Context) error {
	payload := new(CloseTicketRequest)
	// the id can arrive as a form field or as the route parameter
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Debug("TicketClose bind error: %s", err)
	}
	if payload.TicketID == "" {
		payload.TicketID = ctx.Param("id", "")
	}

	result := a.Tickets.Close(ctx, *payload)
	return ctx.JSON(statusFor(result), result)
}

// statusFor maps a flow Result onto an HTTP status so API consumers can
// branch without parsing messages.
func statusFor(res Result) int {
	if res.Success {
		return http.StatusOK
	}

	switch res.Message {
	case MsgUnauthorized, MsgTicketLoginRequired, MsgInvalidCredentials:
		return http.StatusUnauthorized
	case MsgTicketNotOwner:
		return http.StatusForbidden
	case MsgGenericFailure, MsgTicketCreateFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
