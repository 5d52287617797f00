package service

import "errors"

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrConsumerNotFound        = errors.New("consumer not found")
	ErrRestaurantNotFound      = errors.New("restaurant not found")
	ErrMenuNotFound            = errors.New("menu not found")
	ErrMenuNotFromRestaurant   = errors.New("menu does not belong to the restaurant")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrSubscriptionNotPausable = errors.New("only approved subscriptions can be paused")
	ErrSubscriptionNotPaused   = errors.New("subscription is not paused")
	ErrConcurrentUpdate        = errors.New("subscription was modified concurrently")
)
