package repository

import "errors"

var (
	ErrInvalidRecordData   = errors.New("invalid record data")
	ErrInvalidSettingsData = errors.New("invalid settings data")
)
