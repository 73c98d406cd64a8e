package router

import (
	"github.com/labstack/echo/v4"

	"github.com/trackventory/gateway/internal/handlers"
	"github.com/trackventory/gateway/internal/middleware"
)

// SetupAuthRoutes wires the public auth surface.
func SetupAuthRoutes(app *echo.Echo, auth *handlers.AuthHandler) {
	app.GET("/login", auth.ShowLogin)
	app.POST("/login", auth.Login)
	app.POST("/logout", auth.Logout)
	app.POST("/signup", auth.Signup)
	app.PUT("/forgot-password/:username", auth.ForgetPassword)
}

// SetupProtectedRoutes wires everything behind the session gate; admin
// screens additionally sit behind the role gate.
func SetupProtectedRoutes(app *echo.Echo, gate *middleware.Gate, auth *handlers.AuthHandler, dashboard *handlers.DashboardHandler, users *handlers.UserHandler, stores *handlers.StoreHandler) {
	session := app.Group("", gate.RequireSession)

	session.GET("/dashboard", dashboard.Show)
	session.PUT("/settings/password", auth.UpdatePassword)

	session.GET("/api/stores", stores.List)
	session.GET("/api/stores/:id", stores.Get)

	admin := session.Group("", gate.RequireAdmin)
	admin.GET("/api/users", users.List)
	admin.GET("/api/users/:id", users.Get)
	admin.POST("/api/users", users.Create)
	admin.DELETE("/api/users/:id", users.Delete)

	admin.POST("/api/stores", stores.Create)
	admin.PUT("/api/stores/:id", stores.Update)
	admin.DELETE("/api/stores/:id", stores.Delete)
}
