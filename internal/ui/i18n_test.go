package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryLoadFlat(t *testing.T) {
	d := &Dictionary{entries: map[string]string{}}
	err := d.LoadFlat("en", []byte(`{"ui.close": "Close", "ui.open": "Open"}`))
	assert.NoError(t, err)
	assert.Equal(t, "Close", d.Get("ui.close"))
	assert.Equal(t, "en", d.Language())
	assert.EqualValues(t, 1, d.Version())
}

func TestDictionaryGetMissingKeyIsBracketed(t *testing.T) {
	d := &Dictionary{entries: map[string]string{}}
	assert.Equal(t, "!missing.key!", d.Get("missing.key"))
	assert.Equal(t, "", d.Get(""))
}

func TestDictionaryLoadNestedFlattensOnLanguageLeaf(t *testing.T) {
	d := &Dictionary{entries: map[string]string{}}
	data := []byte(`{
		"time": {
			"pause": {"en": "Pause", "zh": "暂停"},
			"resume": {"en": "Resume", "zh": "继续"}
		},
		"ui": {
			"panel": {
				"title": {"en": "Status", "zh": "状态"}
			}
		}
	}`)
	err := d.LoadNested("zh", data)
	assert.NoError(t, err)
	assert.Equal(t, "暂停", d.Get("time.pause"))
	assert.Equal(t, "继续", d.Get("time.resume"))
	assert.Equal(t, "状态", d.Get("ui.panel.title"))
}

func TestDictionaryCallbacksFireOnInstall(t *testing.T) {
	d := &Dictionary{entries: map[string]string{}}
	fired := 0
	d.RegisterCallback("observer", func() { fired++ })
	_ = d.LoadFlat("en", []byte(`{}`))
	assert.Equal(t, 1, fired)

	d.UnregisterCallback("observer")
	_ = d.LoadFlat("en", []byte(`{}`))
	assert.Equal(t, 1, fired)
}

func TestLocalizedTextResolvesOnFirstCallAndOnChange(t *testing.T) {
	d := &Dictionary{entries: map[string]string{}}
	_ = d.LoadFlat("en", []byte(`{"greeting": "hi"}`))

	lt := LocalizedText{Key: "greeting"}
	assert.Equal(t, "hi", lt.Resolve(d))

	_ = d.LoadFlat("en", []byte(`{"greeting": "hello"}`))
	assert.Equal(t, "hello", lt.Resolve(d))
}
