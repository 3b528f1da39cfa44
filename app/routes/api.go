package routes

import (
	"github.com/shashiranjanraj/pizza-delivery-api/app/controllers"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/ctx"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/router"
)

// Guard returns the authentication middleware for a token type; an empty
// type accepts any token.
type Guard func(expected auth.TokenType) router.Middleware

// RegisterAPI mounts the auth and order endpoints.
func RegisterAPI(r *router.Router, authC *controllers.AuthController, orderC *controllers.OrderController, guard Guard) {
	authGroup := r.Group("/auth")
	authGroup.Post("/signup", "auth.signup", ctx.Wrap(authC.Signup))
	authGroup.Post("/login", "auth.login", ctx.Wrap(authC.Login))
	authGroup.Post("/refresh", "auth.refresh", ctx.Wrap(authC.Refresh), guard(auth.RefreshToken))
	authGroup.Post("/logout", "auth.logout", ctx.Wrap(authC.Logout), guard(""))

	orders := r.Group("/orders", guard(auth.AccessToken))
	orders.Get("/orders", "orders.index", ctx.Wrap(orderC.Index))
	orders.Post("/orders", "orders.store", ctx.Wrap(orderC.Store))
	orders.Get("/order/{id:[0-9]+}", "orders.show", ctx.Wrap(orderC.Show))
	orders.Put("/order/{id:[0-9]+}", "orders.update", ctx.Wrap(orderC.Update))
	orders.Delete("/order/{id:[0-9]+}", "orders.destroy", ctx.Wrap(orderC.Destroy))
	orders.Patch("/order/status/{id:[0-9]+}", "orders.status", ctx.Wrap(orderC.UpdateStatus))
	orders.Get("/user/{uid:[0-9]+}/order/{oid:[0-9]+}", "orders.user.show", ctx.Wrap(orderC.UserOrder))
	orders.Get("/user/{uid:[0-9]+}/orders", "orders.user.index", ctx.Wrap(orderC.UserOrders))
}
