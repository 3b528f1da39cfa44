// Package testkit provides a JSON-scenario-driven REST API testing framework.
//
// A flow file describes a sequence of requests that share variables:
//
//	{
//	  "name": "login then order",
//	  "steps": [
//	    {"name": "login", "requestMethod": "POST", "requestUrl": "/auth/login",
//	     "requestBody": {"email": "a@x.com", "password": "pw"},
//	     "expectedCode": 201, "capture": {"token": "access_token"}},
//	    {"name": "list", "requestUrl": "/orders/orders",
//	     "headers": {"Authorization": "Bearer {{token}}"}, "expectedCode": 200}
//	  ]
//	}
//
// Flow files live next to your *_test.go files:
//
//	testdata/
//	  signup_flow.json           ← flow
//	  signup_req.json            ← request body referenced by requestFileName
//	  signup_res.json            ← expected response subset
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, k.Handler(), "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single request and its expectations.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /orders/order/{{order_id}}
	RequestFileName string            `json:"requestFileName"` // JSON request body file (relative to the flow file)
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline body; wins over requestFileName
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ResponseFileName   string          `json:"responseFileName"`   // expected response subset file
	ResponseBody       json.RawMessage `json:"responseBody"`       // inline expected subset; wins over responseFileName
	ExpectedCode       int             `json:"expectedCode"`       // expected HTTP status code
	ExpectedStatusCode int             `json:"expectedStatusCode"` // alias for expectedCode

	// Capture maps a variable name to a dotted path in the JSON response
	// ("access_token", "id", "0.id", "errors.size").
	Capture map[string]string `json:"capture"`

	// resolved at load time: not in JSON
	dir string
}

// Flow is an ordered list of scenarios sharing one variable scope.
type Flow struct {
	Name  string            `json:"name"`
	Vars  map[string]string `json:"vars"`
	Steps []*Scenario       `json:"steps"`
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadFlow reads and validates a flow from a JSON file.
func LoadFlow(path string) (*Flow, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var f Flow
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if f.Name == "" {
		f.Name = filepath.Base(abs)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("testkit: invalid flow %q: steps are required", abs)
	}

	dir := filepath.Dir(abs)
	for i, s := range f.Steps {
		s.dir = dir
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid flow %q step %d: %w", abs, i, err)
		}
	}
	return &f, nil
}

// validate performs basic sanity checks on the loaded scenario.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// requestBody returns the raw request body, or nil when none is set.
func (s *Scenario) requestBody() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

// expectedBody returns the expected response subset, or nil when none is set.
func (s *Scenario) expectedBody() ([]byte, error) {
	if len(s.ResponseBody) > 0 {
		return s.ResponseBody, nil
	}
	if s.ResponseFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.ResponseFileName))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
