package main

import (
	"testing"

	"github.com/ajharbinger/building-health-pipeline/internal/ml"
)

func TestTopImportancesPrefersRegressor(t *testing.T) {
	results := ml.Results{
		Classifier: &ml.ClassifierResults{
			Importances: []ml.FeatureImportance{{Feature: "from_classifier", Importance: 1}},
		},
		Regressor: &ml.RegressorResults{
			Importances: []ml.FeatureImportance{{Feature: "from_regressor", Importance: 1}},
		},
	}
	got := topImportances(results)
	if len(got) != 1 || got[0].Feature != "from_regressor" {
		t.Errorf("topImportances = %+v, want the regressor's list", got)
	}
}

func TestTopImportancesClassifierFallback(t *testing.T) {
	results := ml.Results{
		Classifier: &ml.ClassifierResults{
			Importances: []ml.FeatureImportance{
				{Feature: "collection_rate", Importance: 0.4},
				{Feature: "age", Importance: 0.3},
				{Feature: "reserve_ratio", Importance: 0.1},
				{Feature: "owner_ratio", Importance: 0.08},
				{Feature: "total_funds", Importance: 0.07},
				{Feature: "avg_dues", Importance: 0.05},
			},
		},
	}
	got := topImportances(results)
	if len(got) != 5 {
		t.Fatalf("topImportances returned %d entries, want 5", len(got))
	}
	if got[0].Feature != "collection_rate" {
		t.Errorf("top feature = %q, want collection_rate", got[0].Feature)
	}
}

func TestTopImportancesNoModels(t *testing.T) {
	if got := topImportances(ml.Results{}); len(got) != 0 {
		t.Errorf("topImportances = %+v, want empty without trained models", got)
	}
}
