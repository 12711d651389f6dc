// Package controllers adapts HTTP requests to the services and maps service
// errors onto status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/services"
	"github.com/shashiranjanraj/pubqr/pkg/ctx"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
)

// fail answers err: validation 400, unknown record 404, illegal status
// move 409, bad PIN 401, everything else 500 with the error text.
func fail(cx *ctx.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Message == "" && len(ve.Fields) > 0 {
			cx.ValidationError(ve.Fields)
			return
		}
		cx.Error(http.StatusBadRequest, ve.Error())
	case errors.Is(err, models.ErrInvalidStatus):
		cx.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrOrderNotFound):
		cx.Error(http.StatusNotFound, "Order not found")
	case errors.Is(err, models.ErrProductNotFound):
		cx.Error(http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrCategoryNotFound):
		cx.Error(http.StatusNotFound, "Category not found")
	case errors.Is(err, models.ErrInvalidTransition):
		cx.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidPIN):
		cx.Error(http.StatusUnauthorized, "Invalid PIN")
	default:
		logger.WithCtx(cx.Context()).Error("request failed", "path", cx.R.URL.Path, "error", err)
		cx.Error(http.StatusInternalServerError, err.Error())
	}
}
