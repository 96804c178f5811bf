package classify

import "testing"

func hasTopic(topics []Topic, want Topic) bool {
	for _, t := range topics {
		if t == want {
			return true
		}
	}
	return false
}

func TestClassifyMedicalImaging(t *testing.T) {
	topics := Classify("Deep learning model for tumor detection in MRI scans", "")
	if !hasTopic(topics, MedicalImaging) {
		t.Errorf("expected Medical Imaging, got %v", topics)
	}
	if hasTopic(topics, DrugDiscovery) {
		t.Errorf("did not expect Drug Discovery, got %v", topics)
	}
}

func TestClassifyMultipleTopics(t *testing.T) {
	topics := Classify(
		"Genomic biomarkers for early cancer detection",
		"Gene sequencing combined with diagnostic screening models",
	)
	if !hasTopic(topics, Genomics) {
		t.Errorf("expected Genomics, got %v", topics)
	}
	if !hasTopic(topics, DiseaseDiagnosis) {
		t.Errorf("expected Disease Diagnosis, got %v", topics)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	topics := Classify("Quarterly earnings report", "Revenue grew this quarter")
	if len(topics) != 0 {
		t.Errorf("expected no topics for unrelated text, got %v", topics)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	topics := Classify("", "")
	if len(topics) != 0 {
		t.Errorf("expected no topics for empty input, got %v", topics)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	title := "NLP for clinical notes and remote monitoring wearables"
	summary := "Natural language processing of electronic health records"

	first := Classify(title, summary)
	second := Classify(title, summary)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic result: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("topic order differs at %d: %v vs %v", i, first, second)
		}
	}
}

func TestClassifyCanonicalOrder(t *testing.T) {
	// Mentions monitoring before imaging in the text; output order must
	// follow the topic table, not the text.
	topics := Classify("Wearable sensors and MRI imaging", "")
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %v", topics)
	}
	if topics[0] != MedicalImaging || topics[1] != PatientMonitoring {
		t.Errorf("expected canonical order [Medical Imaging, Patient Monitoring], got %v", topics)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	topics := Classify("PRECISION MEDICINE For Oncology", "")
	if !hasTopic(topics, PersonalizedMedicine) {
		t.Errorf("expected Personalized Medicine, got %v", topics)
	}
}

func TestClassifySummaryOnly(t *testing.T) {
	topics := Classify("A new approach", "predicting hospital readmission risk")
	if !hasTopic(topics, PredictiveAnalytics) {
		t.Errorf("expected Predictive Analytics from summary text, got %v", topics)
	}
}

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		alias    string
		expected Topic
		wantErr  bool
	}{
		{"imaging", MedicalImaging, false},
		{"nlp", NLPInHealthcare, false},
		{"cds", ClinicalDecisionSupport, false},
		{"drugs", DrugDiscovery, false},
		{"predict", PredictiveAnalytics, false},
		{"diagnosis", DiseaseDiagnosis, false},
		{"ehr", HealthRecords, false},
		{"precision", PersonalizedMedicine, false},
		{"monitoring", PatientMonitoring, false},
		{"genomics", Genomics, false},
		{"Medical Imaging", MedicalImaging, false}, // full name
		{"drug discovery", DrugDiscovery, false},   // full name, lowercase
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveAlias(tt.alias)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveAlias(%q): expected error", tt.alias)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveAlias(%q): unexpected error: %v", tt.alias, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ResolveAlias(%q) = %q, want %q", tt.alias, got, tt.expected)
		}
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	topics := []Topic{MedicalImaging, Genomics}
	joined := Join(topics)
	if joined != "|Medical Imaging|Genomics|" {
		t.Errorf("unexpected joined form: %q", joined)
	}

	back := Split(joined)
	if len(back) != 2 || back[0] != MedicalImaging || back[1] != Genomics {
		t.Errorf("Split(Join(%v)) = %v", topics, back)
	}
}

func TestJoinEmpty(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
	if got := Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
}

func TestAllTopics(t *testing.T) {
	topics := AllTopics()
	if len(topics) != 10 {
		t.Errorf("expected 10 topics, got %d", len(topics))
	}
}
