package config

import "testing"

func TestGuidesCollectionName(t *testing.T) {
	saved := AppConfig
	defer func() { AppConfig = saved }()

	AppConfig.GuidesCollection = ""
	if got := GuidesCollectionName(); got != GuidesCollection {
		t.Errorf("expected default %q, got %q", GuidesCollection, got)
	}

	AppConfig.GuidesCollection = "tourGuides"
	if got := GuidesCollectionName(); got != "tourGuides" {
		t.Errorf("expected configured collection, got %q", got)
	}
}

func TestBrokers(t *testing.T) {
	saved := AppConfig
	defer func() { AppConfig = saved }()

	AppConfig.KafkaBrokers = " kafka-1:9092, ,kafka-2:9092 "
	got := Brokers()
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", got)
	}
}
