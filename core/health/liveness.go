package health

import (
	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/response"
)

// Liveness reports that the process is up. It never touches dependencies.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
