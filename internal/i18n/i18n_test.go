package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestEmbeddedManagerFallsBackToDefaultLanguage(t *testing.T) {
	manager, err := NewEmbeddedManager("de")
	if err != nil {
		t.Fatalf("NewEmbeddedManager returned error: %v", err)
	}

	if got := manager.DefaultLanguage(); got != LangEN {
		t.Fatalf("expected unsupported default to fall back to en, got %q", got)
	}
	if got := manager.NormalizeLanguage("ru-RU"); got != LangRU {
		t.Fatalf("expected ru-RU to normalize to ru, got %q", got)
	}
	if got := manager.DetectFromAcceptLanguage("fr-CA, ru;q=0.8, en;q=0.5"); got != LangRU {
		t.Fatalf("expected first supported Accept-Language entry ru, got %q", got)
	}
	if got := manager.Translate("ru", "missing.key"); got != "missing.key" {
		t.Fatalf("expected unknown key to echo itself, got %q", got)
	}
}

func TestMonthAndWeekdayNames(t *testing.T) {
	manager, err := NewEmbeddedManager(LangEN)
	if err != nil {
		t.Fatalf("NewEmbeddedManager returned error: %v", err)
	}

	if got := manager.MonthLabel("en", 2024, time.February); got != "February 2024" {
		t.Fatalf("expected February 2024, got %q", got)
	}
	if got := manager.MonthLabel("ru", 2025, time.January); got != "Январь 2025" {
		t.Fatalf("expected Январь 2025, got %q", got)
	}
	if got := manager.WeekdayShort("en", time.Sunday); got != "Su" {
		t.Fatalf("expected Su, got %q", got)
	}

	for month := time.January; month <= time.December; month++ {
		for _, language := range manager.SupportedLanguages() {
			key := manager.MonthName(language, month)
			if strings.HasPrefix(key, "month.") {
				t.Fatalf("expected %s to name month %d, got %q", language, month, key)
			}
		}
	}
}

func TestNewManagerFSRequiresBothCatalogs(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{"app.title":"Range picker"}`)},
	}

	if _, err := NewManagerFS(LangEN, locales); err == nil {
		t.Fatal("expected missing ru catalog to fail")
	}
}

func TestTranslateFallsBackPerKey(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{"a":"A","b":"B"}`)},
		"ru.json": &fstest.MapFile{Data: []byte(`{"a":"А","b":"  "}`)},
	}

	manager, err := NewManagerFS(LangEN, locales)
	if err != nil {
		t.Fatalf("NewManagerFS returned error: %v", err)
	}
	if got := manager.Translate("ru", "a"); got != "А" {
		t.Fatalf("expected ru value, got %q", got)
	}
	if got := manager.Translate("ru", "b"); got != "B" {
		t.Fatalf("expected blank ru value to fall back to en, got %q", got)
	}
}
