package domain

// ProvisionStatus tracks the hosting allocation lifecycle reported by the
// remote platform for a site.
type ProvisionStatus string

const (
	ProvisionNotProvisioned ProvisionStatus = "not_provisioned"
	ProvisionProvisioning   ProvisionStatus = "provisioning"
	ProvisionProvisioned    ProvisionStatus = "provisioned"
	ProvisionError          ProvisionStatus = "error"
)

// Known reports whether the status is one of the platform-defined values.
func (s ProvisionStatus) Known() bool {
	switch s {
	case ProvisionNotProvisioned, ProvisionProvisioning, ProvisionProvisioned, ProvisionError:
		return true
	}
	return false
}

// PublishStatus is the derived presentation state combining provisioning and
// publishing progress. It is never persisted.
type PublishStatus string

const (
	PublishNotProvisioned PublishStatus = "not_provisioned"
	PublishProvisioning   PublishStatus = "provisioning"
	PublishProvisioned    PublishStatus = "provisioned"
	PublishPublishing     PublishStatus = "publishing"
	PublishLive           PublishStatus = "live"
	PublishError          PublishStatus = "error"
)
