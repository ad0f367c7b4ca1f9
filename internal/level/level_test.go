package level

import (
	"testing"

	"github.com/hstree/hstree/internal/schedule"
)

func lvl(t *testing.T, r schedule.Row) *int {
	t.Helper()
	rows := Assign([]schedule.Row{r})
	return rows[0].Level
}

func TestAssign_ChapterHeaderIsLevelZero(t *testing.T) {
	cases := []string{
		"Chapter 25",
		"chapter 25 - Salt; sulphur",
		"  CHAPTER 84  ",
	}
	for _, desc := range cases {
		got := lvl(t, schedule.Row{Description: desc})
		if got == nil || *got != 0 {
			t.Errorf("%q: expected level 0, got %v", desc, got)
		}
	}
}

func TestAssign_MarkerRunGivesRunLength(t *testing.T) {
	got := lvl(t, schedule.Row{Description: "Other salt", RawLevel: "--"})
	if got == nil || *got != 2 {
		t.Errorf("expected level 2 for marker %q, got %v", "--", got)
	}
}

func TestAssign_UnmarkedRowStaysUnset(t *testing.T) {
	got := lvl(t, schedule.Row{Description: "Some separator text"})
	if got != nil {
		t.Errorf("expected nil level, got %d", *got)
	}
}

func TestAssign_MixedMarkerIsNotARun(t *testing.T) {
	got := lvl(t, schedule.Row{Description: "Odd row", RawLevel: "-x-"})
	if got != nil {
		t.Errorf("expected nil level for mixed marker, got %d", *got)
	}
}

func TestAssign_TariffFourDigitCodeForcesLevelOne(t *testing.T) {
	// The marker would give level 3; the 4-digit code wins.
	got := lvl(t, schedule.Row{
		Description: "Salt (including table salt)",
		Remark:      "Tariff",
		Code:        "2501",
		RawLevel:    "---",
	})
	if got == nil || *got != 1 {
		t.Errorf("expected level 1 for 4-digit tariff code, got %v", got)
	}
}

func TestAssign_TariffMarkerNestsOneDeeper(t *testing.T) {
	got := lvl(t, schedule.Row{
		Description: "Denatured salt",
		Remark:      "Tariff",
		Code:        "25010010",
		RawLevel:    "---",
	})
	if got == nil || *got != 4 {
		t.Errorf("expected level 4 for tariff marker %q, got %v", "---", got)
	}
}

func TestAssign_TariffFallbackIsLevelOne(t *testing.T) {
	got := lvl(t, schedule.Row{
		Description: "Rock salt",
		Remark:      "Tariff",
		Code:        "25010020",
	})
	if got == nil || *got != 1 {
		t.Errorf("expected fallback level 1, got %v", got)
	}
}

func TestAssign_RemarkMatchIsCaseInsensitive(t *testing.T) {
	got := lvl(t, schedule.Row{
		Description: "Salt",
		Remark:      "tariff",
		Code:        "2501",
	})
	if got == nil || *got != 1 {
		t.Errorf("expected level 1 for lowercase remark, got %v", got)
	}
}

func TestAssign_NonTariffKeepsSeedResult(t *testing.T) {
	got := lvl(t, schedule.Row{
		Description: "Sub-heading note",
		Remark:      "notes",
		RawLevel:    "--",
	})
	if got == nil || *got != 2 {
		t.Errorf("expected seed level 2 for non-tariff row, got %v", got)
	}
}
