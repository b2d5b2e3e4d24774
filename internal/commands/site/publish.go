package sitecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/provision"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const publishSiteMessageType = "sitebuilder.site.publish"

// PublishSiteCommand promotes the working draft to the live site.
type PublishSiteCommand struct {
	BusinessID string `json:"business_id"`
}

// Type implements command.Message.
func (PublishSiteCommand) Type() string { return publishSiteMessageType }

// Validate ensures the command identifies a business.
func (m PublishSiteCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.BusinessID) == "" {
		errs["business_id"] = validation.NewError("site.publish.business_id_required", "business_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishSiteHandler publishes the draft via the provisioning machine.
type PublishSiteHandler struct {
	inner *commands.Handler[PublishSiteCommand]
}

// NewPublishSiteHandler constructs a handler wired to the provided machine.
func NewPublishSiteHandler(machine *provision.Machine, logger interfaces.Logger, opts ...commands.HandlerOption[PublishSiteCommand]) *PublishSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishSiteCommand) error {
		return machine.Publish(ctx)
	}

	handlerOpts := []commands.HandlerOption[PublishSiteCommand]{
		commands.WithLogger[PublishSiteCommand](baseLogger),
		commands.WithOperation[PublishSiteCommand]("site.publish"),
		commands.WithMessageFields(func(msg PublishSiteCommand) map[string]any {
			if trimmed := strings.TrimSpace(msg.BusinessID); trimmed != "" {
				return map[string]any{"business_id": trimmed}
			}
			return nil
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishSiteCommand].Execute.
func (h *PublishSiteHandler) Execute(ctx context.Context, msg PublishSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
