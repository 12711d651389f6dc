package controllers

import (
	"github.com/shashiranjanraj/pubqr/app/services"
	"github.com/shashiranjanraj/pubqr/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index handles GET /orders. An optional ?status= narrows the list.
func (c *OrderController) Index(cx *ctx.Context) {
	orders, err := c.service.ListByStatus(cx.Context(), cx.Query("status"))
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(orders)
}

// Store handles POST /orders.
func (c *OrderController) Store(cx *ctx.Context) {
	var in services.PlaceOrderInput
	if !cx.DecodeJSON(&in) {
		return
	}

	order, err := c.service.Place(cx.Context(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(order)
}

func (c *OrderController) Show(cx *ctx.Context) {
	order, err := c.service.Get(cx.Context(), cx.Param("id"))
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(order)
}

type statusInput struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /orders/{id}.
func (c *OrderController) UpdateStatus(cx *ctx.Context) {
	var in statusInput
	if !cx.DecodeJSON(&in) {
		return
	}

	order, err := c.service.UpdateStatus(cx.Context(), cx.Param("id"), in.Status)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(order)
}
