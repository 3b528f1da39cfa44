package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

// ─── Variables ────────────────────────────────────────────────────────────────

var placeholderRE = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Vars is the variable scope shared by the steps of one flow.
type Vars map[string]string

// Expand replaces every {{name}} in s. Unknown names are reported in missing
// and left in place.
func (v Vars) Expand(s string) (out string, missing []string) {
	out = placeholderRE.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRE.FindStringSubmatch(m)[1]
		if val, ok := v[name]; ok {
			return val
		}
		missing = append(missing, name)
		return m
	})
	return out, missing
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes the flow in path against handler as one subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	f, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("testkit: load flow %q: %v", path, err)
	}
	t.Run(f.Name, func(t *testing.T) {
		RunFlow(t, handler, f)
	})
}

// RunDir discovers every *.json flow in dir and runs each as a subtest.
// Referenced body files (*_req.json, *_res.json) are skipped.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no flow files found in %q", dir)
	}

	for _, path := range entries {
		base := filepath.Base(path)
		if strings.HasSuffix(base, "_req.json") || strings.HasSuffix(base, "_res.json") {
			continue
		}
		Run(t, handler, path)
	}
}

// RunFlow executes the steps of f in order. A failing step stops the flow
// since later steps usually depend on its captures.
func RunFlow(t *testing.T, handler http.Handler, f *Flow) {
	t.Helper()

	vars := Vars{}
	for k, v := range f.Vars {
		vars[k] = v
	}

	for _, s := range f.Steps {
		ok := t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, vars)
		})
		if !ok {
			return
		}
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	// ── 1. Build the request ─────────────────────────────────────────────

	url := mustExpand(t, s, vars, s.RequestURL)

	var reqBody io.Reader
	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	if raw != nil {
		reqBody = strings.NewReader(mustExpand(t, s, vars, string(raw)))
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, mustExpand(t, s, vars, v))
	}

	// ── 2. Fire it ───────────────────────────────────────────────────────

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// ── 3. Assert ────────────────────────────────────────────────────────

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	expected, err := s.expectedBody()
	if err != nil {
		t.Fatalf("[%s] read expected body: %v", s.Name, err)
	}
	if expected != nil {
		AssertJSONSubset(t, s, []byte(mustExpand(t, s, vars, string(expected))), rec.Body.Bytes())
	}

	// ── 4. Capture ───────────────────────────────────────────────────────

	if len(s.Capture) == 0 {
		return
	}
	var body interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("[%s] capture: response is not JSON: %s", s.Name, rec.Body.String())
	}
	for name, path := range s.Capture {
		val, ok := Lookup(body, path)
		if !ok {
			t.Fatalf("[%s] capture %q: path %q not in response %s", s.Name, name, path, rec.Body.String())
		}
		vars[name] = scalar(val)
	}
}

func mustExpand(t *testing.T, s *Scenario, vars Vars, in string) string {
	t.Helper()
	out, missing := vars.Expand(in)
	if len(missing) > 0 {
		t.Fatalf("[%s] undefined variables: %s", s.Name, strings.Join(missing, ", "))
	}
	return out
}

// Lookup walks a decoded JSON value along a dotted path. Numeric segments
// index arrays.
func Lookup(v interface{}, path string) (interface{}, bool) {
	if path == "" {
		return v, true
	}
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}

// scalar renders a captured value for substitution. Whole numbers print
// without a decimal point so ids can go straight into URLs.
func scalar(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	}
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(v)
	return strings.TrimSpace(buf.String())
}

// DumpFlow prints a human-readable summary of the flow to stdout.
// Useful during test development to inspect what was loaded.
func DumpFlow(f *Flow) {
	fmt.Printf("Flow: %s\n", f.Name)
	for i, s := range f.Steps {
		fmt.Printf("  [%d] %s %s → %d  %s\n", i, s.RequestMethod, s.RequestURL, s.ExpectedCode, s.Name)
		for name, path := range s.Capture {
			fmt.Printf("      capture %s ← %s\n", name, path)
		}
	}
}
