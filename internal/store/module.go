package store

import (
	"context"

	"go.uber.org/fx"
)

func registerLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Startup is the only blocking storage read; callers gate on
			// IsLoading afterwards.
			s.Load(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Flush()
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerLifecycle),
)
