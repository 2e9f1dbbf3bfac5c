package main

import "errors"

// Core operation errors. Handlers translate these to HTTP statuses; ownership
// and existence failures on requests are deliberately indistinguishable so
// callers cannot probe for other users' requests.
var (
	errRequestNotFound   = errors.New("request not found or unauthorized")
	errInvalidAction     = errors.New("invalid action")
	errProfileNotFound   = errors.New("profile not found")
	errPortfolioNotFound = errors.New("portfolio not found")
)
