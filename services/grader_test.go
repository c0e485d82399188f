package services

import (
	"strings"
	"testing"
)

func TestGrade_NoRequirementsScoresFull(t *testing.T) {
	score, passed, checks := Grade(nil, "anything at all", "")
	if score != 100 || !passed {
		t.Fatalf("expected 100/passed, got %d/%v", score, passed)
	}
	if checks != nil {
		t.Fatalf("expected no checks, got %d", len(checks))
	}
}

func TestGrade_HalfMetScoresFifty(t *testing.T) {
	reqs := []string{
		"Include a link to the published post",
		"Write at least 500 words",
	}
	content := "Here is my post: https://blog.example.dev/my-post (short summary)"

	score, passed, checks := Grade(reqs, content, "")
	if score != 50 {
		t.Fatalf("expected score 50, got %d", score)
	}
	if passed {
		t.Fatal("score 50 must not pass")
	}
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if !checks[0].Met || checks[1].Met {
		t.Fatalf("expected link met / word count unmet, got %v / %v", checks[0].Met, checks[1].Met)
	}
}

func TestGrade_WordCountTolerance(t *testing.T) {
	reqs := []string{"Write at least 100 words"}
	// 85 words: within the 80% tolerance of 100.
	content := strings.Repeat("word ", 85)

	score, passed, _ := Grade(reqs, content, "")
	if score != 100 || !passed {
		t.Fatalf("expected 100/passed at 85/100 words, got %d/%v", score, passed)
	}

	short := strings.Repeat("word ", 60)
	score, _, _ = Grade(reqs, short, "")
	if score != 0 {
		t.Fatalf("expected 0 at 60/100 words, got %d", score)
	}
}

func TestGrade_VideoRequirementNeedsRecognizedHost(t *testing.T) {
	reqs := []string{"Record a 2 minute walkthrough video"}

	score, _, _ := Grade(reqs, "walkthrough here: https://youtube.com/watch?v=abc", "")
	if score != 100 {
		t.Fatalf("expected youtube link to satisfy, got %d", score)
	}

	score, _, _ = Grade(reqs, "walkthrough here: https://myblog.dev/video.mp4", "")
	if score != 0 {
		t.Fatalf("expected unrecognized host to fail, got %d", score)
	}
}

func TestGrade_PlatformMention(t *testing.T) {
	reqs := []string{"Post about the launch on twitter"}

	score, _, _ := Grade(reqs, "posted to twitter, link coming", "")
	if score != 100 {
		t.Fatalf("expected platform mention to satisfy, got %d", score)
	}

	score, _, _ = Grade(reqs, "posted somewhere else entirely", "")
	if score != 0 {
		t.Fatalf("expected missing platform to fail, got %d", score)
	}
}

func TestGrade_ImageRequirement(t *testing.T) {
	reqs := []string{"Attach a screenshot of the result"}

	score, _, _ := Grade(reqs, "see https://i.imgur.com/abc123.png", "")
	if score != 100 {
		t.Fatalf("expected image link to satisfy, got %d", score)
	}

	score, _, _ = Grade(reqs, "no picture, sorry", "")
	if score != 0 {
		t.Fatalf("expected missing image to fail, got %d", score)
	}
}

func TestGrade_KeywordFallback(t *testing.T) {
	reqs := []string{"Benchmark the parser against production traffic"}

	// "benchmark", "parser", "against", "production", "traffic" — all present.
	score, _, _ := Grade(reqs, "I ran a benchmark of the parser against recorded production traffic.", "")
	if score != 100 {
		t.Fatalf("expected keyword overlap to satisfy, got %d", score)
	}

	score, _, _ = Grade(reqs, "done, works fine", "")
	if score != 0 {
		t.Fatalf("expected low overlap to fail, got %d", score)
	}
}

func TestShouldAutoReject_OnlyWithoutAnyURL(t *testing.T) {
	if !ShouldAutoReject(0, "garbage text", "") {
		t.Fatal("score 0 with no URL anywhere should auto-reject")
	}
	if ShouldAutoReject(0, "garbage text", "https://proof.example.dev/x") {
		t.Fatal("a proof URL must prevent auto-rejection")
	}
	if ShouldAutoReject(0, "see https://example.dev/work", "") {
		t.Fatal("a URL in content must prevent auto-rejection")
	}
	if ShouldAutoReject(50, "garbage text", "") {
		t.Fatal("a mid score must never auto-reject")
	}
}
