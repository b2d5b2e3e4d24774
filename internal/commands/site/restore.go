package sitecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/lifecycle"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const restoreVersionMessageType = "sitebuilder.site.restore_version"

// RestoreVersionCommand makes a historical version the working draft.
type RestoreVersionCommand struct {
	BusinessID string `json:"business_id"`
	VersionID  string `json:"version_id"`
}

// Type implements command.Message.
func (RestoreVersionCommand) Type() string { return restoreVersionMessageType }

// Validate ensures the command identifies both a business and a version.
func (m RestoreVersionCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.BusinessID) == "" {
		errs["business_id"] = validation.NewError("site.restore.business_id_required", "business_id is required")
	}
	if strings.TrimSpace(m.VersionID) == "" {
		errs["version_id"] = validation.NewError("site.restore.version_id_required", "version_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RestoreVersionHandler restores drafts via the lifecycle manager.
type RestoreVersionHandler struct {
	inner *commands.Handler[RestoreVersionCommand]
}

// NewRestoreVersionHandler constructs a handler wired to the provided manager.
func NewRestoreVersionHandler(manager *lifecycle.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[RestoreVersionCommand]) *RestoreVersionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RestoreVersionCommand) error {
		return manager.RestoreVersion(ctx, msg.VersionID)
	}

	handlerOpts := []commands.HandlerOption[RestoreVersionCommand]{
		commands.WithLogger[RestoreVersionCommand](baseLogger),
		commands.WithOperation[RestoreVersionCommand]("site.restore_version"),
		commands.WithMessageFields(func(msg RestoreVersionCommand) map[string]any {
			fields := map[string]any{}
			if trimmed := strings.TrimSpace(msg.BusinessID); trimmed != "" {
				fields["business_id"] = trimmed
			}
			if trimmed := strings.TrimSpace(msg.VersionID); trimmed != "" {
				fields["version_id"] = trimmed
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RestoreVersionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RestoreVersionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RestoreVersionCommand].Execute.
func (h *RestoreVersionHandler) Execute(ctx context.Context, msg RestoreVersionCommand) error {
	return h.inner.Execute(ctx, msg)
}
