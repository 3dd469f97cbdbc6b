package diagnostics

import "context"

type Database interface {
	Describe() map[string]string
	Ping(ctx context.Context) error
}
