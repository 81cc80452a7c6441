package services

import "errors"

// ErrNoDataset is returned by every DashboardService operation when no dataset is loaded.
var ErrNoDataset = errors.New("no dataset loaded")
