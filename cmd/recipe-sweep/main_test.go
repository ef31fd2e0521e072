package main

import "testing"

func TestParseIntensities(t *testing.T) {
	got, err := parseIntensities("0, 0.5,1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 0.5 || got[2] != 1 {
		t.Fatalf("got %v", got)
	}
	for _, bad := range []string{"1.5", "-0.1", "x", ""} {
		if _, err := parseIntensities(bad); err == nil {
			t.Fatalf("parseIntensities(%q) accepted", bad)
		}
	}
}

func TestSweepRunsEveryScenario(t *testing.T) {
	sets := []scenario{{"a", 0}, {"b", 0.5}, {"c", 1}, {"d", 1}}
	got := sweep(sets, 3, func(s scenario) scenarioResult {
		return scenarioResult{scenario: s, peakLive: len(s.recipe)}
	})
	if len(got) != len(sets) {
		t.Fatalf("got %d results, want %d", len(got), len(sets))
	}
	seen := map[string]bool{}
	for _, r := range got {
		seen[r.recipe] = true
	}
	for _, s := range sets {
		if !seen[s.recipe] {
			t.Fatalf("scenario %s missing", s)
		}
	}
}

func TestRunScenarioGoesIdle(t *testing.T) {
	res := runScenario(scenario{recipe: "supernova", intensity: 1}, 40, 900)
	if res.spawned != 40 {
		t.Fatalf("spawned = %d, want 40", res.spawned)
	}
	if res.ticksToIdle < 0 {
		t.Fatal("supernova never went idle")
	}
	if res.maxDisplacement <= 0 || res.meanDisplacement <= 0 {
		t.Fatalf("displacement mean=%v max=%v", res.meanDisplacement, res.maxDisplacement)
	}
}

func TestHigherIntensityTravelsFurther(t *testing.T) {
	low := runScenario(scenario{recipe: "supernova", intensity: 0.25}, 60, 120)
	high := runScenario(scenario{recipe: "supernova", intensity: 1}, 60, 120)
	if high.maxDisplacement <= low.maxDisplacement {
		t.Fatalf("max displacement high=%v low=%v", high.maxDisplacement, low.maxDisplacement)
	}
}
