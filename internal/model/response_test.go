package model

import "testing"

func TestResponseAfterFindDropsEmptyScore(t *testing.T) {
	unscored := &Response{Score: &ScoreResult{}}
	if err := unscored.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind: %v", err)
	}
	if unscored.Score != nil {
		t.Fatalf("zero score should load as nil, got %+v", unscored.Score)
	}

	scored := &Response{Score: &ScoreResult{Score: 0, MaxScore: 10, Category: "Poor", Color: "#f44336"}}
	if err := scored.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind: %v", err)
	}
	if scored.Score == nil || scored.Score.Category != "Poor" {
		t.Fatalf("a real zero score must be kept, got %+v", scored.Score)
	}
}
