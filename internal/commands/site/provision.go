package sitecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/provision"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const provisionSiteMessageType = "sitebuilder.site.provision"

// ProvisionSiteCommand requests hosting allocation under a chosen slug.
type ProvisionSiteCommand struct {
	BusinessID string `json:"business_id"`
	Slug       string `json:"slug"`
}

// Type implements command.Message.
func (ProvisionSiteCommand) Type() string { return provisionSiteMessageType }

// Validate ensures the command carries a business identity and a well-formed
// slug before reaching handlers.
func (m ProvisionSiteCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.BusinessID) == "" {
		errs["business_id"] = validation.NewError("site.provision.business_id_required", "business_id is required")
	}
	if err := siteconfig.ValidateSiteSlug(m.Slug); err != nil {
		errs["slug"] = validation.NewError("site.provision.slug_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProvisionSiteHandler starts provisioning via the state machine using the
// shared command handler foundation.
type ProvisionSiteHandler struct {
	inner *commands.Handler[ProvisionSiteCommand]
}

// NewProvisionSiteHandler constructs a handler wired to the provided machine.
func NewProvisionSiteHandler(machine *provision.Machine, logger interfaces.Logger, opts ...commands.HandlerOption[ProvisionSiteCommand]) *ProvisionSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ProvisionSiteCommand) error {
		return machine.StartProvisioning(ctx, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[ProvisionSiteCommand]{
		commands.WithLogger[ProvisionSiteCommand](baseLogger),
		commands.WithOperation[ProvisionSiteCommand]("site.provision"),
		commands.WithMessageFields(func(msg ProvisionSiteCommand) map[string]any {
			fields := map[string]any{}
			if trimmed := strings.TrimSpace(msg.BusinessID); trimmed != "" {
				fields["business_id"] = trimmed
			}
			if trimmed := strings.TrimSpace(msg.Slug); trimmed != "" {
				fields["slug"] = trimmed
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ProvisionSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProvisionSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ProvisionSiteCommand].Execute.
func (h *ProvisionSiteHandler) Execute(ctx context.Context, msg ProvisionSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
