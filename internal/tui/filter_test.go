package tui

import "testing"

func TestSelectBarMultiToggle(t *testing.T) {
	b := newSelectBar([]string{"Nature", "BMJ", "arXiv"}, false)

	if got := b.activeEntries(); got != nil {
		t.Errorf("expected nil (all) when nothing selected, got %v", got)
	}
	if b.activeLabel() != "All" {
		t.Errorf("expected label All, got %q", b.activeLabel())
	}

	b.toggle("BMJ")
	b.toggle("Nature")
	got := b.activeEntries()
	if len(got) != 2 || got[0] != "Nature" || got[1] != "BMJ" {
		t.Errorf("expected active entries in bar order, got %v", got)
	}

	b.toggle("BMJ")
	got = b.activeEntries()
	if len(got) != 1 || got[0] != "Nature" {
		t.Errorf("expected BMJ toggled off, got %v", got)
	}
}

func TestSelectBarSingleSelect(t *testing.T) {
	b := newSelectBar([]string{"Medical Imaging", "Genomics"}, true)

	b.toggle("Medical Imaging")
	b.toggle("Genomics")
	if got := b.activeEntry(); got != "Genomics" {
		t.Errorf("expected single-select to replace, got %q", got)
	}

	b.toggle("Genomics")
	if got := b.activeEntry(); got != "" {
		t.Errorf("expected toggle-off to clear, got %q", got)
	}
}

func TestSelectBarToggleCurrent(t *testing.T) {
	b := newSelectBar([]string{"A", "B"}, false)
	b.cursor = 1
	b.toggleCurrent()
	if got := b.activeEntry(); got != "B" {
		t.Errorf("expected cursor entry toggled, got %q", got)
	}
}
