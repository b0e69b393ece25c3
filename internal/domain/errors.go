package domain

import "errors"

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrGoalNotFound            = errors.New("goal not found")
	ErrSettingsNotFound        = errors.New("reminder settings not found")
	ErrUnknownTracker          = errors.New("unknown tracker")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidGoal             = errors.New("daily goal must be positive")
	ErrInvalidInterval         = errors.New("interval minutes must be positive")
	ErrInvalidClock            = errors.New("time must be HH:MM in 24-hour format")
	ErrInvalidMode             = errors.New("mode must be auto or manual")
	ErrInvalidActivityLevel    = errors.New("activity level must be low, medium or high")
	ErrInvalidCalculationInput = errors.New("invalid calculation input")
)
