package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry"
)

// fakeClient implements registry.Client for testing.
type fakeClient struct {
	mu        sync.Mutex
	app       *registry.Application
	lookupErr error
	self      *registry.Instance
	selfErr   error

	shutdowns   int
	shutdownErr error
}

func (f *fakeClient) Lookup(ctx context.Context, serviceName string) (*registry.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, registry.Transport("lookup", f.lookupErr)
	}
	return f.app, nil
}

func (f *fakeClient) Self(ctx context.Context) (*registry.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selfErr != nil {
		return nil, registry.Transport("self", f.selfErr)
	}
	return f.self, nil
}

func (f *fakeClient) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
	return f.shutdownErr
}

func (f *fakeClient) shutdownCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdowns
}

func registeredApp(name string) *registry.Application {
	return &registry.Application{
		Name: name,
		Instances: []registry.Instance{
			{ID: name + "-1", AppName: name, Address: "10.0.0.5", Port: 8080},
		},
	}
}

func newTestTracker(client registry.Client) *Tracker {
	return New(client, "orders", "http://localhost:8500", logger.NewDefault("test"))
}

func TestIsRegistered(t *testing.T) {
	trk := newTestTracker(&fakeClient{app: registeredApp("orders")})
	if !trk.IsRegistered(context.Background()) {
		t.Error("expected registered")
	}
}

func TestIsRegisteredAbsent(t *testing.T) {
	cases := []struct {
		name string
		app  *registry.Application
	}{
		{"no record", nil},
		{"empty instances", &registry.Application{Name: "orders"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trk := newTestTracker(&fakeClient{app: tc.app})
			if trk.IsRegistered(context.Background()) {
				t.Error("expected not registered")
			}
		})
	}
}

func TestIsRegisteredTransportFailure(t *testing.T) {
	trk := newTestTracker(&fakeClient{lookupErr: errors.New("connection refused")})
	if trk.IsRegistered(context.Background()) {
		t.Error("expected false on transport failure")
	}
}

func TestHasConnectionError(t *testing.T) {
	ctx := context.Background()

	trk := newTestTracker(&fakeClient{lookupErr: errors.New("connection refused")})
	if !trk.HasConnectionError(ctx) {
		t.Error("expected connection error")
	}

	trk = newTestTracker(&fakeClient{app: nil})
	if trk.HasConnectionError(ctx) {
		t.Error("absent record must not count as connection error")
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeClient
		want   Status
	}{
		{"registered", &fakeClient{app: registeredApp("orders")}, StatusConnected},
		{"absent", &fakeClient{}, StatusDisconnected},
		{"failure", &fakeClient{lookupErr: errors.New("timeout")}, StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trk := newTestTracker(tc.client)
			if got := trk.Status(context.Background()); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestHeartbeatAdvancesOnRegistered(t *testing.T) {
	trk := newTestTracker(&fakeClient{app: registeredApp("orders")})
	before := trk.lastHeartbeat.Load()

	time.Sleep(2 * time.Millisecond)
	trk.IsRegistered(context.Background())

	if after := trk.lastHeartbeat.Load(); after <= before {
		t.Errorf("heartbeat did not advance: before=%d after=%d", before, after)
	}
}

func TestHeartbeatUnchangedWhenAbsent(t *testing.T) {
	trk := newTestTracker(&fakeClient{})
	before := trk.lastHeartbeat.Load()

	time.Sleep(2 * time.Millisecond)
	trk.IsRegistered(context.Background())

	if after := trk.lastHeartbeat.Load(); after != before {
		t.Errorf("heartbeat moved without a registered observation: before=%d after=%d", before, after)
	}
}

func TestHeartbeatNeverMovesBackward(t *testing.T) {
	trk := newTestTracker(&fakeClient{})
	now := time.Now()

	trk.advanceHeartbeat(now)
	trk.advanceHeartbeat(now.Add(-time.Minute))

	if got := trk.lastHeartbeat.Load(); got != now.UnixNano() {
		t.Errorf("heartbeat moved backward: got %d, want %d", got, now.UnixNano())
	}
}

func TestInstanceAccessors(t *testing.T) {
	trk := newTestTracker(&fakeClient{self: &registry.Instance{
		ID:             "orders-1",
		HomePageURL:    "http://10.0.0.5:8080/",
		HealthCheckURL: "http://10.0.0.5:8080/api/health",
		StatusPageURL:  "http://10.0.0.5:8080/api/info",
	}})
	ctx := context.Background()

	if got := trk.InstanceID(ctx); got != "orders-1" {
		t.Errorf("InstanceID = %q", got)
	}
	if got := trk.HomePageURL(ctx); got != "http://10.0.0.5:8080/" {
		t.Errorf("HomePageURL = %q", got)
	}
	if got := trk.HealthCheckURL(ctx); got != "http://10.0.0.5:8080/api/health" {
		t.Errorf("HealthCheckURL = %q", got)
	}
	if got := trk.StatusPageURL(ctx); got != "http://10.0.0.5:8080/api/info" {
		t.Errorf("StatusPageURL = %q", got)
	}
}

func TestInstanceAccessorsUnknownWhenAbsent(t *testing.T) {
	trk := newTestTracker(&fakeClient{})
	ctx := context.Background()

	for name, got := range map[string]string{
		"instance_id":      trk.InstanceID(ctx),
		"home_page_url":    trk.HomePageURL(ctx),
		"health_check_url": trk.HealthCheckURL(ctx),
		"status_page_url":  trk.StatusPageURL(ctx),
	} {
		if got != ValueUnknown {
			t.Errorf("%s = %q, want %q", name, got, ValueUnknown)
		}
	}
}

func TestInstanceAccessorsErrorOnFailure(t *testing.T) {
	trk := newTestTracker(&fakeClient{selfErr: errors.New("connection refused")})

	if got := trk.InstanceID(context.Background()); got != ValueError {
		t.Errorf("InstanceID = %q, want %q", got, ValueError)
	}
}

// A failing Self call must not poison the lookup path or vice versa.
func TestSelfFailureIndependentOfLookup(t *testing.T) {
	trk := newTestTracker(&fakeClient{
		app:     registeredApp("orders"),
		selfErr: errors.New("connection refused"),
	})
	ctx := context.Background()

	if !trk.IsRegistered(ctx) {
		t.Error("expected registered despite Self failure")
	}
	if got := trk.InstanceID(ctx); got != ValueError {
		t.Errorf("InstanceID = %q, want %q", got, ValueError)
	}
}

func TestStaticAccessors(t *testing.T) {
	trk := newTestTracker(&fakeClient{})

	if got := trk.ServiceName(); got != "orders" {
		t.Errorf("ServiceName = %q", got)
	}
	if got := trk.RegistryAddress(); got != "http://localhost:8500" {
		t.Errorf("RegistryAddress = %q", got)
	}
}

func TestTimestampFormat(t *testing.T) {
	trk := newTestTracker(&fakeClient{})

	for name, got := range map[string]string{
		"registration":   trk.RegistrationTime(),
		"last heartbeat": trk.LastHeartbeatTime(),
	} {
		if _, err := time.Parse(TimeLayout, got); err != nil {
			t.Errorf("%s time %q does not match layout: %v", name, got, err)
		}
	}
}

func TestConcurrentQueries(t *testing.T) {
	trk := newTestTracker(&fakeClient{app: registeredApp("orders")})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				trk.IsRegistered(ctx)
				trk.Status(ctx)
				trk.LastHeartbeatTime()
			}
		}()
	}
	wg.Wait()

	if got := trk.Status(ctx); got != StatusConnected {
		t.Errorf("expected CONNECTED after concurrent queries, got %s", got)
	}
}
