package script

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// Overlay is the YAML-configurable surface of the support script: the
// phrase table and any utterance wording. Routing and handlers stay in
// code; an overlay that names an unknown state or finish manner is a
// configuration error.
type Overlay struct {
	// Phrases, when non-empty, replaces the whole phrase table.
	Phrases map[string][]string `yaml:"phrases,omitempty"`
	// Entries overrides state entry wording by state name.
	Entries map[string]string `yaml:"entries,omitempty"`
	// Finishes overrides finish wording by manner name.
	Finishes map[string]string `yaml:"finishes,omitempty"`
	// ConfusedPrompt overrides the fixed re-ask utterance.
	ConfusedPrompt string `yaml:"confused_prompt,omitempty"`
	// EndMarker overrides the end-of-conversation marker.
	EndMarker string `yaml:"end_marker,omitempty"`
}

// LoadOverlay reads and parses an overlay file.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read script overlay", "error", err, "path", path)
		return nil, fmt.Errorf("read overlay %s: %w", path, err)
	}
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		slog.Error("Failed to parse script overlay", "error", err, "path", path)
		return nil, fmt.Errorf("parse overlay %s: %w", path, err)
	}
	slog.Info("Loaded script overlay", "path", path, "phrases", len(o.Phrases), "entries", len(o.Entries), "finishes", len(o.Finishes))
	return &o, nil
}

// apply merges the overlay onto the default wording and phrase table.
func (o *Overlay) apply(texts *Texts, phrases []models.PhraseRule) (*Texts, []models.PhraseRule, error) {
	for state, text := range o.Entries {
		id := models.StateID(state)
		if _, ok := texts.Entries[id]; !ok {
			return nil, nil, fmt.Errorf("overlay names unknown state %q", state)
		}
		texts.Entries[id] = text
	}
	for manner, text := range o.Finishes {
		m := models.FinishManner(manner)
		if _, ok := texts.Finishes[m]; !ok {
			return nil, nil, fmt.Errorf("overlay names unknown finish manner %q", manner)
		}
		texts.Finishes[m] = text
	}
	if o.ConfusedPrompt != "" {
		texts.ConfusedPrompt = o.ConfusedPrompt
	}
	if o.EndMarker != "" {
		texts.EndMarker = o.EndMarker
	}
	if len(o.Phrases) > 0 {
		// Sort for a deterministic table; matching itself is order-independent.
		keys := make([]string, 0, len(o.Phrases))
		for phrase := range o.Phrases {
			keys = append(keys, phrase)
		}
		sort.Strings(keys)
		replaced := make([]models.PhraseRule, 0, len(keys))
		for _, phrase := range keys {
			tags := make([]models.Tag, 0, len(o.Phrases[phrase]))
			for _, t := range o.Phrases[phrase] {
				tags = append(tags, models.Tag(t))
			}
			replaced = append(replaced, models.PhraseRule{Phrase: phrase, Tags: tags})
		}
		phrases = replaced
	}
	return texts, phrases, nil
}
