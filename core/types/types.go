// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// SupportType selects an MSP plan
type SupportType string

const (
	SupportRemote SupportType = "remote"
	SupportOnsite SupportType = "onsite"
	SupportHybrid SupportType = "hybrid"
)

// String returns the string representation of the support type
func (s SupportType) String() string {
	return string(s)
}

// SLALevel selects a response-time tier and its price multiplier
type SLALevel string

const (
	SLAStandard SLALevel = "standard"
	SLAPriority SLALevel = "priority"
	SLAPremium  SLALevel = "premium"
)

// String returns the string representation of the SLA level
func (l SLALevel) String() string {
	return string(l)
}

// PricingModel identifies one of the three billing models
type PricingModel string

const (
	ModelAdhoc   PricingModel = "adhoc"
	ModelPrepaid PricingModel = "prepaid"
	ModelMSP     PricingModel = "msp"
)

// String returns the string representation of the model
func (m PricingModel) String() string {
	return string(m)
}
