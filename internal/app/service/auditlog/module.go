package auditlog

import (
	"go.uber.org/fx"

	"github.com/fatflowers/motorvault/internal/store"
)

// Module provides the audit service both concretely (for the admin API) and
// as the store's AuditRecorder hook.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(s *Service) store.AuditRecorder { return s }),
)
