// Package httpkit is what service modules use to route and answer requests,
// so they never import internal/platform/net/http themselves
package httpkit

import (
	"net/http"

	phttp "cattery/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// Created wraps data in a 201
func Created(data any) Response { return phttp.Created(data) }

// call turns a bodiless handler into an envelope handler.
// A returned Response is written as is, anything else is a 200
func call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if resp, ok := out.(Response); ok {
			return resp
		}
		if err != nil {
			return phttp.Error(err)
		}
		return phttp.OK(out)
	})
}

// Get routes a bodiless GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, call(h)) }

// Post routes a bodiless POST; return Created(...) for a 201
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, call(h)) }

// PostJSON decodes and validates a T body for a POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON decodes and validates a T body for a PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}
