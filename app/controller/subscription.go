package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/factory"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/mapper"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/schedule"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/types"
)

type SubscriptionController struct {
	subscriptionService *service.SubscriptionService
	logger              logrus.FieldLogger
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		logger:              factory.NewModuleLogger("subscriptions-controller"),
	}
}

func (c *SubscriptionController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &dto.HealthResponse{Status: "ok"})
}

func (c *SubscriptionController) CreateSubscription(ctx echo.Context) error {
	req, err := types.NewCreateSubscriptionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.CreateSubscription(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrUnknownMealFrequency),
			errors.Is(err, schedule.ErrUnknownMealPlan),
			errors.Is(err, service.ErrInvalidRequest),
			errors.Is(err, service.ErrMenuNotFromRestaurant):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConsumerNotFound):
			return c.writeError(ctx, http.StatusNotFound, "consumer not found")
		case errors.Is(err, service.ErrRestaurantNotFound):
			return c.writeError(ctx, http.StatusNotFound, "restaurant not found")
		case errors.Is(err, service.ErrMenuNotFound):
			return c.writeError(ctx, http.StatusNotFound, "menu not found")
		default:
			c.logger.WithError(err).Error("Create subscription failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) GetSubscription(ctx echo.Context) error {
	req, err := types.NewSubscriptionIDRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.GetSubscription(ctx.Request().Context(), req.GetID())
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "subscription not found")
		}
		c.logger.WithError(err).Error("Get subscription failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) ListSubscriptions(ctx echo.Context) error {
	req, err := types.NewListSubscriptionsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.subscriptionService.ListSubscriptions(ctx.Request().Context(), req.GetConsumerID())
	if err != nil {
		c.logger.WithError(err).Error("List subscriptions failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.ListSubscriptionsResponse{
		Subscriptions: mapper.SubscriptionsToResponse(items),
	})
}

func (c *SubscriptionController) ListSubscriptionOrders(ctx echo.Context) error {
	req, err := types.NewSubscriptionIDRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.subscriptionService.ListSubscriptionOrders(ctx.Request().Context(), req.GetID())
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "subscription not found")
		}
		c.logger.WithError(err).Error("List subscription orders failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.ListOrdersResponse{
		Orders: mapper.OrdersToResponse(items),
	})
}

func (c *SubscriptionController) UpdateSubscriptionStatus(ctx echo.Context) error {
	req, err := types.NewUpdateSubscriptionStatusRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.UpdateSubscriptionStatus(ctx.Request().Context(), req.GetID(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubscriptionNotFound):
			return c.writeError(ctx, http.StatusNotFound, "subscription not found")
		case errors.Is(err, service.ErrConcurrentUpdate):
			return c.writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Update subscription status failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) PauseSubscription(ctx echo.Context) error {
	req, err := types.NewPauseSubscriptionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.PauseSubscription(ctx.Request().Context(), req.GetID(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubscriptionNotFound):
			return c.writeError(ctx, http.StatusNotFound, "subscription not found")
		case errors.Is(err, service.ErrSubscriptionNotPausable), errors.Is(err, service.ErrConcurrentUpdate):
			return c.writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Pause subscription failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.MessageResponse{
		Message:      "Subscription paused successfully",
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) ResumeSubscription(ctx echo.Context) error {
	req, err := types.NewSubscriptionIDRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.ResumeSubscription(ctx.Request().Context(), req.GetID())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			return c.writeError(ctx, http.StatusNotFound, "subscription not found")
		case errors.Is(err, service.ErrSubscriptionNotPaused), errors.Is(err, service.ErrConcurrentUpdate):
			return c.writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Resume subscription failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.MessageResponse{
		Message:      "Subscription resumed successfully",
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &dto.ErrorResponse{Error: message})
}
