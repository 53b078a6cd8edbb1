package agent

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type fakeReports struct {
	lastDays, lastSims int
	err                error
}

func (f *fakeReports) Holdings() (string, error) { return "holdings report", f.err }
func (f *fakeReports) Risk() (string, error)     { return "risk report", f.err }
func (f *fakeReports) Simulation(days, numSimulations int) (string, error) {
	f.lastDays, f.lastSims = days, numSimulations
	return "simulation report", f.err
}

func TestLibraryDispatch(t *testing.T) {
	reports := &fakeReports{}
	lib := NewLibrary([]Function{holdingsFunc(reports), riskFunc(reports)})

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Risk"})
	if got := resp.Response["output"]; got != "risk report" {
		t.Errorf("Risk output = %v", got)
	}

	resp = lib(context.Background(), &genai.FunctionCall{ID: "2", Name: "Nope"})
	if _, ok := resp.Response["error"]; !ok {
		t.Error("unknown function did not answer with an error response")
	}
}

func TestLibraryReportsErrors(t *testing.T) {
	reports := &fakeReports{err: errors.New("no data")}
	lib := NewLibrary([]Function{holdingsFunc(reports)})

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Holdings"})
	if got := resp.Response["error"]; got != "no data" {
		t.Errorf("error response = %v, want the report error", got)
	}
	if _, ok := resp.Response["output"]; ok {
		t.Error("failed report still produced an output")
	}
}

func TestSimulationFuncArguments(t *testing.T) {
	reports := &fakeReports{}
	f := simulationFunc(reports)

	// JSON decoding hands integers over as float64.
	f.Call(context.Background(), "1", map[string]any{"days": float64(90), "simulations": float64(500)})
	if reports.lastDays != 90 || reports.lastSims != 500 {
		t.Errorf("arguments = (%d, %d), want (90, 500)", reports.lastDays, reports.lastSims)
	}

	f.Call(context.Background(), "2", map[string]any{})
	if reports.lastDays != 252 || reports.lastSims != 1000 {
		t.Errorf("defaults = (%d, %d), want (252, 1000)", reports.lastDays, reports.lastSims)
	}
}

func TestNewDeclaration(t *testing.T) {
	reports := &fakeReports{}
	decls := NewDeclaration([]Function{holdingsFunc(reports), riskFunc(reports), simulationFunc(reports)})
	if len(decls) != 3 {
		t.Fatalf("declarations = %d, want 3", len(decls))
	}
	names := map[string]bool{}
	for _, d := range decls {
		names[d.Name] = true
	}
	for _, want := range []string{"Holdings", "Risk", "Simulation"} {
		if !names[want] {
			t.Errorf("missing declaration %q", want)
		}
	}
}
