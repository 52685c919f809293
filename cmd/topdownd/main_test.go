package main

import "testing"

func TestReplayer_HappyPathFixture(t *testing.T) {
	if err := (replayer{}).Replay("testdata/happy_path.json"); err != nil {
		t.Fatalf("Replay(happy_path.json) failed: %v", err)
	}
}

func TestLoadFixture_RejectsMissingFile(t *testing.T) {
	if _, err := loadFixture("testdata/does_not_exist.json"); err == nil {
		t.Fatal("loadFixture on a missing file should return an error")
	}
}
