package ril

import "context"

// Await calls the given command and blocks until its result arrives or the context is done.
func Await(ctx context.Context, command func(ResultFunc)) (any, error) {
	responses := make(chan Response, 1)
	command(func(response Response) {
		responses <- response
	})

	select {
	case response := <-responses:
		return response.Value, response.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
