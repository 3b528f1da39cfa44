package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index handles GET /orders/orders.
func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.service.All(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Store handles POST /orders/orders.
func (oc *OrderController) Store(c *ctx.Context) {
	var input services.OrderInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := oc.service.Create(c.Context(), c.Identity(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Show handles GET /orders/order/{id}.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	order, err := oc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Update handles PUT /orders/order/{id}.
func (oc *OrderController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	var input services.OrderInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := oc.service.Update(c.Context(), id, input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/order/status/{id}.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	var input services.StatusInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := oc.service.UpdateStatus(c.Context(), id, input.OrderStatus)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Destroy handles DELETE /orders/order/{id}.
func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	if err := oc.service.Delete(c.Context(), c.Identity(), id); err != nil {
		fail(c, err)
		return
	}
	c.Message(http.StatusOK, "Order Deleted")
}

// UserOrders handles GET /orders/user/{uid}/orders.
func (oc *OrderController) UserOrders(c *ctx.Context) {
	uid, ok := c.ParamUint("uid")
	if !ok {
		c.NotFound("user not found")
		return
	}

	orders, err := oc.service.ForUser(c.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UserOrder handles GET /orders/user/{uid}/order/{oid}.
func (oc *OrderController) UserOrder(c *ctx.Context) {
	uid, okUser := c.ParamUint("uid")
	oid, okOrder := c.ParamUint("oid")
	if !okUser || !okOrder {
		c.NotFound("order not found")
		return
	}

	order, err := oc.service.FindForUser(c.Context(), uid, oid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
