package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-predictor/config"
	"college-predictor/domain"
	"college-predictor/service"
)

func resetPredictFlags() {
	predictRank = 0
	predictCategory = ""
	predictGender = domain.GenderNeutral
	predictCity = ""
	predictInstitutes = domain.DefaultInstitutes
	predictBranches = nil
	predictMaxDistance = 0
	predictMaxClosingRank = 0
	predictPriority = ""
	predictSort = string(domain.SortByScore)
	predictFilter = domain.InstituteAll
	predictCSV = ""
	predictRelax = false
}

func useBackend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := config.LoadFrom("")
	require.NoError(t, err)
	c.API.BaseURL = srv.URL
	cfg = c
}

func testCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestPredictCmd_Definition(t *testing.T) {
	flags := predictCmd.Flags()

	rank := flags.Lookup("rank")
	require.NotNil(t, rank)
	assert.Equal(t, "r", rank.Shorthand)

	institute := flags.Lookup("institute")
	require.NotNil(t, institute)
	assert.Equal(t, "[IIT,NIT]", institute.DefValue)

	sortFlag := flags.Lookup("sort")
	require.NotNil(t, sortFlag)
	assert.Equal(t, "score", sortFlag.DefValue)

	for _, name := range []string{"category", "gender", "city", "branch", "max-distance", "max-closing-rank", "priority", "filter", "csv", "relax"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestPredictInput(t *testing.T) {
	resetPredictFlags()
	t.Cleanup(resetPredictFlags)

	predictRank = 1500
	predictCategory = "OPEN"
	predictCity = "Pune"
	predictMaxDistance = 400

	input := predictInput()

	assert.Equal(t, 1500, input.Rank)
	assert.Equal(t, []string{"IIT", "NIT"}, input.PreferredInstitutes)
	assert.NotNil(t, input.PreferredBranches)
	require.NotNil(t, input.MaxDistanceKm)
	assert.Equal(t, 400, *input.MaxDistanceKm)
	assert.Nil(t, input.MaxClosingRank)

	input.PreferredInstitutes[0] = "GFTI"
	assert.Equal(t, "IIT", domain.DefaultInstitutes[0])
}

func TestRunPredict_Live(t *testing.T) {
	resetPredictFlags()
	t.Cleanup(resetPredictFlags)

	var got domain.StudentInput
	useBackend(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"institute_name":"NIT Calicut","college_name":"NIT Calicut","branch":"Computer Science","quota_options":[{"quota":"OS","closing_rank":4100}],"category":"OPEN","gender":"Gender-Neutral","state":"Kerala","distance_km":610.4,"institute_type":"NIT","recommendation_score":81.2}]`))
	})

	predictRank = 3000
	predictCategory = "OPEN"
	predictCSV = filepath.Join(t.TempDir(), "out.csv")

	cmd, stdout, _ := testCommand()
	require.NoError(t, runPredict(cmd, nil))

	assert.Equal(t, 3000, got.Rank)
	out := stdout.String()
	assert.Contains(t, out, "outcome: live")
	assert.Contains(t, out, "1 colleges (IIT 0, NIT 1, IIIT 0, GFTI 0)")
	assert.Contains(t, out, "NIT Calicut")
	assert.Contains(t, out, "610 km")

	csv, err := os.ReadFile(predictCSV)
	require.NoError(t, err)
	assert.Equal(t,
		"Rank,Institute,College,Branch,State,Quota,Opening Rank,Closing Rank,Score\n1,NIT Calicut,NIT Calicut,Computer Science,Kerala,OS,N/A,4100,81.2",
		string(csv))
}

func TestRunPredict_Degraded(t *testing.T) {
	resetPredictFlags()
	t.Cleanup(resetPredictFlags)

	useBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	predictRank = 3000
	predictCategory = "OPEN"
	predictInstitutes = []string{"IIIT"}

	cmd, stdout, _ := testCommand()
	require.NoError(t, runPredict(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "outcome: degraded")
	assert.Contains(t, out, service.DiagnosticUnreachable)
	assert.Contains(t, out, "IIIT Hyderabad")
	assert.NotContains(t, out, "NIT Trichy")
}

func TestRunPredict_RelaxClearsPreferences(t *testing.T) {
	resetPredictFlags()
	t.Cleanup(resetPredictFlags)

	var got domain.StudentInput
	useBackend(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`[]`))
	})

	predictRank = 800
	predictCategory = "OPEN"
	predictCity = "Delhi"
	predictBranches = []string{"Electrical"}
	predictRelax = true

	cmd, stdout, _ := testCommand()
	require.NoError(t, runPredict(cmd, nil))

	assert.Empty(t, got.HomeCity)
	assert.Empty(t, got.PreferredInstitutes)
	assert.Empty(t, got.PreferredBranches)
	assert.Contains(t, stdout.String(), "No colleges match")
}

func TestRunPredict_InvalidInput(t *testing.T) {
	resetPredictFlags()
	t.Cleanup(resetPredictFlags)

	predictRank = 100
	predictCategory = "OPEN"
	predictGender = "Other"

	cmd, _, stderr := testCommand()
	err := runPredict(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Gender")
}

func TestRunFilters(t *testing.T) {
	useBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filters", r.URL.Path)
		_, _ = w.Write([]byte(`{"states":["Kerala"],"branches":[],"categories":["OPEN"],"genders":[],"institutes":["NIT"],"quotas":["OS"]}`))
	})

	cmd, stdout, stderr := testCommand()
	require.NoError(t, runFilters(cmd, nil))

	var got domain.FilterOptions
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, []string{"Kerala"}, got.States)
	assert.Empty(t, stderr.String())
}

func TestRunFilters_Unavailable(t *testing.T) {
	useBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	cmd, stdout, stderr := testCommand()
	require.NoError(t, runFilters(cmd, nil))

	assert.Contains(t, stderr.String(), service.DiagnosticFiltersUnavailable)
	assert.True(t, strings.Contains(stdout.String(), `"states": []`))
}
