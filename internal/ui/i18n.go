package ui

import (
	"encoding/json"
	"fmt"
	"sync"

	locale "github.com/jeandeaual/go-locale"
)

// Dictionary is the process-wide translation table: a version-counted
// map from key (e.g. "ui.close_panel") to the current language's
// string. Localized text elements cache the version they last read and
// refresh when it no longer matches; RegisterCallback additionally
// notifies content that cannot poll every frame (log entries, window
// titles).
type Dictionary struct {
	mu      sync.RWMutex
	lang    string
	entries map[string]string
	version uint32

	callbacks map[string]func()
}

var defaultDict = &Dictionary{entries: map[string]string{}, lang: "en"}

// Default returns the process-wide dictionary instance.
func Default() *Dictionary { return defaultDict }

// Get looks key up in the current language, returning "!key!" when
// missing -- visible in the UI so a missing translation is never
// silently blank, matching the original "!"+key+"!" convention.
func (d *Dictionary) Get(key string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if key == "" {
		return ""
	}
	if v, ok := d.entries[key]; ok {
		return v
	}
	return "!" + key + "!"
}

// Version returns the current generation counter; callers cache it to
// detect a language change without polling the whole dictionary.
func (d *Dictionary) Version() uint32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Language returns the currently loaded language code.
func (d *Dictionary) Language() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lang
}

// LoadFlat installs entries as-is: a flat {"key.path": "text", ...}
// file, one per language -- the simplest of the two accepted shapes.
func (d *Dictionary) LoadFlat(lang string, data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("ui: parse flat translation file: %w", err)
	}
	d.install(lang, flat)
	return nil
}

// LoadNested installs entries parsed out of a single shared file whose
// leaves are per-language objects, e.g. {"time": {"pause": {"en": "...",
// "zh": "..."}}}. A nested object is a translation leaf exactly when it
// contains a key equal to lang; any other nested object is a structural
// grouping and recursion continues into it.
func (d *Dictionary) LoadNested(lang string, data []byte) error {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("ui: parse nested translation file: %w", err)
	}
	flat := map[string]string{}
	flattenNested(tree, "", lang, flat)
	d.install(lang, flat)
	return nil
}

func flattenNested(node map[string]any, parentKey, lang string, out map[string]string) {
	for key, value := range node {
		fullKey := key
		if parentKey != "" {
			fullKey = parentKey + "." + key
		}
		obj, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if leaf, ok := obj[lang]; ok {
			if s, ok := leaf.(string); ok {
				out[fullKey] = s
			}
			continue
		}
		flattenNested(obj, fullKey, lang, out)
	}
}

func (d *Dictionary) install(lang string, entries map[string]string) {
	d.mu.Lock()
	d.lang = lang
	d.entries = entries
	d.version++
	callbacks := make([]func(), 0, len(d.callbacks))
	for _, cb := range d.callbacks {
		callbacks = append(callbacks, cb)
	}
	d.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// RegisterCallback installs cb under observerID, fired whenever the
// language changes -- for dynamic content that cannot poll Version()
// itself (a log panel's already-appended lines, for instance).
func (d *Dictionary) RegisterCallback(observerID string, cb func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callbacks == nil {
		d.callbacks = map[string]func(){}
	}
	d.callbacks[observerID] = cb
}

// UnregisterCallback removes a previously-registered callback.
func (d *Dictionary) UnregisterCallback(observerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.callbacks, observerID)
}

// HostLanguage asks the OS for the user's preferred language tag,
// falling back to "en" when detection fails (headless/CI environments,
// unsupported platforms).
func HostLanguage() string {
	tag, err := locale.GetLocale()
	if err != nil || tag == "" {
		return "en"
	}
	return tag
}

// LocalizedText tracks the dictionary version it last refreshed
// against, so a frame's Draw can re-fetch its string exactly when the
// language actually changed instead of every frame.
type LocalizedText struct {
	Key string

	fetched       bool
	cachedVersion uint32
	cachedValue   string
}

// Resolve returns the current translation, refreshing the cache on the
// first call and whenever the dictionary's version has advanced since
// the last one.
func (t *LocalizedText) Resolve(dict *Dictionary) string {
	if v := dict.Version(); !t.fetched || v != t.cachedVersion {
		t.cachedValue = dict.Get(t.Key)
		t.cachedVersion = v
		t.fetched = true
	}
	return t.cachedValue
}
