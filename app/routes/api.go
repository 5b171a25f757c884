package routes

import (
	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// Deps is everything the API routes need.
type Deps struct {
	Items    *services.ItemService
	Users    *services.UserService
	Sessions *services.SessionService
	Profiles *services.ProfileService
	Tokens   middleware.TokenVerifier

	Cookie controllers.CookieOptions
	Limits controllers.Limits
}

// RegisterAPI mounts the item and user endpoints under prefix.
func RegisterAPI(r *router.Router, prefix string, d Deps) {
	api := r.Group(prefix)

	items := controllers.NewItemController(d.Items, d.Limits)
	api.Get("/item", "item.index", ctx.Wrap(items.Index))
	api.Post("/item", "item.store", ctx.Wrap(items.Store))

	sessions := controllers.NewSessionController(d.Sessions, d.Cookie, d.Limits)
	api.Post("/user/login", "user.login", ctx.Wrap(sessions.Login))
	api.Post("/user/logout", "user.logout", ctx.Wrap(sessions.Logout))

	profiles := controllers.NewProfileController(d.Profiles, d.Sessions, d.Cookie, d.Limits)
	profile := api.Group("/user/profile", middleware.Session(d.Tokens, d.Sessions.Resolve))
	profile.Get("/", "profile.show", ctx.Wrap(profiles.Show))
	profile.Patch("/", "profile.update", ctx.Wrap(profiles.Update))
	profile.Get("/image", "profile.image", ctx.Wrap(profiles.Image))
	profile.Post("/image", "profile.image.store", ctx.Wrap(profiles.Upload))
	profile.Post("/upload", "profile.upload", ctx.Wrap(profiles.Upload))
	profile.Delete("/image", "profile.image.destroy", ctx.Wrap(profiles.RemoveImage))

	loginPath, _ := r.Path("user.login")
	users := controllers.NewUserController(d.Users, d.Limits, loginPath)
	api.Get("/user", "user.index", ctx.Wrap(users.Index))
	api.Post("/user", "user.store", ctx.Wrap(users.Store))
	api.Get("/user/{id}", "user.show", ctx.Wrap(users.Show))
	api.Patch("/user/{id}", "user.update", ctx.Wrap(users.Update))
	api.Put("/user/{id}", "user.replace", ctx.Wrap(users.Replace))
	api.Delete("/user/{id}", "user.destroy", ctx.Wrap(users.Destroy))
}
