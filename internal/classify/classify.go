package classify

import (
	"fmt"
	"strings"
)

// Topic represents a medical-AI research topic.
type Topic string

const (
	MedicalImaging          Topic = "Medical Imaging"
	NLPInHealthcare         Topic = "NLP in Healthcare"
	ClinicalDecisionSupport Topic = "Clinical Decision Support"
	DrugDiscovery           Topic = "Drug Discovery"
	PredictiveAnalytics     Topic = "Predictive Analytics"
	DiseaseDiagnosis        Topic = "Disease Diagnosis"
	HealthRecords           Topic = "Electronic Health Records"
	PersonalizedMedicine    Topic = "Personalized Medicine"
	PatientMonitoring       Topic = "Patient Monitoring"
	Genomics                Topic = "Genomics"
)

// AllTopics returns all valid topics in canonical order.
func AllTopics() []Topic {
	return []Topic{
		MedicalImaging, NLPInHealthcare, ClinicalDecisionSupport, DrugDiscovery,
		PredictiveAnalytics, DiseaseDiagnosis, HealthRecords,
		PersonalizedMedicine, PatientMonitoring, Genomics,
	}
}

var topicKeywords = map[Topic][]string{
	MedicalImaging: {
		"imaging", "radiology", "x-ray", "mri", "ct scan", "ultrasound",
		"image segmentation", "image classification",
	},
	NLPInHealthcare: {
		"nlp", "natural language", "text mining", "medical notes",
		"clinical notes", "documentation", "medical language",
	},
	ClinicalDecisionSupport: {
		"clinical decision", "decision support", "cdss", "clinical workflow",
		"physician", "doctor", "nurse", "medical decision",
	},
	DrugDiscovery: {
		"drug discovery", "pharmaceutical", "molecule", "compound",
		"drug design", "medicinal chemistry", "therapeutics",
	},
	PredictiveAnalytics: {
		"predict", "forecasting", "risk prediction", "outcome prediction",
		"patient outcome", "mortality prediction", "readmission",
	},
	DiseaseDiagnosis: {
		"diagnosis", "diagnostic", "detection", "screening", "early detection",
		"disease classification", "pathology",
	},
	HealthRecords: {
		"ehr", "emr", "electronic health record", "electronic medical record",
		"health record", "patient record",
	},
	PersonalizedMedicine: {
		"personalized", "precision medicine", "patient-specific", "tailored",
		"individualized care", "custom treatment",
	},
	PatientMonitoring: {
		"monitoring", "wearable", "sensor", "remote monitoring",
		"patient tracking", "vital signs", "telehealth",
	},
	Genomics: {
		"genomic", "gene", "genetic", "dna", "rna", "sequencing", "genome",
		"biomarker",
	},
}

// TopicAliases maps short CLI flags to full topic names.
var TopicAliases = map[string]Topic{
	"imaging":    MedicalImaging,
	"nlp":        NLPInHealthcare,
	"cds":        ClinicalDecisionSupport,
	"drugs":      DrugDiscovery,
	"predict":    PredictiveAnalytics,
	"diagnosis":  DiseaseDiagnosis,
	"ehr":        HealthRecords,
	"precision":  PersonalizedMedicine,
	"monitoring": PatientMonitoring,
	"genomics":   Genomics,
}

// ResolveAlias maps a CLI alias to a Topic.
func ResolveAlias(alias string) (Topic, error) {
	alias = strings.TrimSpace(alias)
	if topic, ok := TopicAliases[strings.ToLower(alias)]; ok {
		return topic, nil
	}
	// Also accept full topic names (case-insensitive)
	for _, topic := range AllTopics() {
		if strings.EqualFold(string(topic), alias) {
			return topic, nil
		}
	}
	valid := make([]string, 0, len(TopicAliases))
	for _, topic := range AllTopics() {
		for k, v := range TopicAliases {
			if v == topic {
				valid = append(valid, k)
				break
			}
		}
	}
	return "", fmt.Errorf("unknown topic %q (valid: %s)", alias, strings.Join(valid, ", "))
}

// Classify returns every topic whose keyword set matches the combined
// title+summary text. Pure substring membership over the static table:
// an article may match zero, one, or many topics, and the same text always
// yields the same set, in canonical topic order.
func Classify(title, summary string) []Topic {
	text := strings.ToLower(title + " " + summary)

	var topics []Topic
	for _, topic := range AllTopics() {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(text, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}

// Join renders a topic set the way the cache stores it: delimited so a
// single topic can be matched with a LIKE query.
func Join(topics []Topic) string {
	if len(topics) == 0 {
		return ""
	}
	parts := make([]string, len(topics))
	for i, t := range topics {
		parts[i] = string(t)
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// Split is the inverse of Join.
func Split(s string) []Topic {
	s = strings.Trim(s, "|")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	topics := make([]Topic, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			topics = append(topics, Topic(p))
		}
	}
	return topics
}
