package nlp

import (
	"reflect"
	"testing"
)

func TestNormalizeLowercasesAndStripsPunctuation(t *testing.T) {
	normalized, keywords := Normalize("What is the Personal Relief amount?!")

	if normalized != "what is the personal relief amount" {
		t.Fatalf("unexpected normalized text: %q", normalized)
	}
	if !reflect.DeepEqual(keywords, []string{"personal", "relief", "amount"}) {
		t.Fatalf("unexpected keywords: %v", keywords)
	}
}

func TestNormalizeDropsStopWords(t *testing.T) {
	_, keywords := Normalize("how much tax for my rental income")

	for _, kw := range keywords {
		if kw == "how" || kw == "much" || kw == "for" || kw == "my" {
			t.Fatalf("stop-word %q survived normalization: %v", kw, keywords)
		}
	}
	if !reflect.DeepEqual(keywords, []string{"tax", "rental", "income"}) {
		t.Fatalf("unexpected keywords: %v", keywords)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	normalized, keywords := Normalize("")
	if normalized != "" {
		t.Fatalf("expected empty normalized text, got %q", normalized)
	}
	if len(keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", keywords)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, firstKeywords := Normalize("epf deduction limit 2025")
	second, secondKeywords := Normalize(first)

	if first != second {
		t.Fatalf("normalization not idempotent: %q vs %q", first, second)
	}
	if !reflect.DeepEqual(firstKeywords, secondKeywords) {
		t.Fatalf("keyword sets differ: %v vs %v", firstKeywords, secondKeywords)
	}
}

func TestNormalizeDeduplicatesKeywords(t *testing.T) {
	_, keywords := Normalize("tax tax tax relief")
	if !reflect.DeepEqual(keywords, []string{"tax", "relief"}) {
		t.Fatalf("expected deduplicated ordered keywords, got %v", keywords)
	}
}
