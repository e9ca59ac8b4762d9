package tracker

import "context"

// Report statuses exposed on the discovery status endpoint.
const (
	ReportRegistered    = "REGISTERED"
	ReportNotRegistered = "NOT_REGISTERED"
	ReportError         = "ERROR"
)

// Report is the composed registration status handed to the HTTP layer.
// The HTTP layer adds the envelope timestamp and encodes it; it always
// answers 200 regardless of the Status field.
type Report struct {
	Registered       bool   `json:"registered"`
	Status           string `json:"status"`
	Message          string `json:"message"`
	ApplicationName  string `json:"applicationName"`
	RegistryAddress  string `json:"registryAddress"`
	InstanceID       string `json:"instanceId"`
	HomePageURL      string `json:"homePageUrl,omitempty"`
	HealthCheckURL   string `json:"healthCheckUrl,omitempty"`
	StatusPageURL    string `json:"statusPageUrl,omitempty"`
	LastHeartbeat    string `json:"lastHeartbeat,omitempty"`
	RegistrationTime string `json:"registrationTime,omitempty"`
}

// Report composes the full registration status. A connection error yields an
// ERROR report with identity fields only; otherwise the report carries the
// instance metadata and both timestamps. Never fails.
func (t *Tracker) Report(ctx context.Context) Report {
	r := Report{
		ApplicationName: t.serviceName,
		RegistryAddress: t.registryAddr,
		InstanceID:      t.InstanceID(ctx),
	}

	if t.HasConnectionError(ctx) {
		r.Status = ReportError
		r.Message = "Connection error while checking registry registration status"
		return r
	}

	r.Registered = t.IsRegistered(ctx)
	r.HomePageURL = t.HomePageURL(ctx)
	r.HealthCheckURL = t.HealthCheckURL(ctx)
	r.StatusPageURL = t.StatusPageURL(ctx)
	r.LastHeartbeat = t.LastHeartbeatTime()
	r.RegistrationTime = t.RegistrationTime()

	if r.Registered {
		r.Status = ReportRegistered
		r.Message = "Service successfully registered with registry"
	} else {
		r.Status = ReportNotRegistered
		r.Message = "Service not yet registered with registry or registration failed"
	}
	return r
}
