// Package console is the localized session log shown on the HUD and journaled to disk
package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/perimeter/core"
)

// Entry is one console line
type Entry struct {
	Time  time.Time  `json:"time"`
	Level core.Level `json:"level"`
	Key   Key        `json:"key"`
	Text  string     `json:"text"`
	Lang  Lang       `json:"lang"`
}

// Sink receives every entry appended to a Log
type Sink interface {
	Write(v any) error
}

// Log is a bounded, thread-safe ring of entries with a current language
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	start    int
	count    int
	lang     Lang
	sink     Sink
	sinkErrs int
}

// NewLog creates a log holding at most capacity entries
func NewLog(capacity int, lang Lang) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{
		entries: make([]Entry, capacity),
		lang:    lang,
	}
}

// SetSink attaches a journal; nil detaches
func (l *Log) SetSink(s Sink) {
	l.mu.Lock()
	l.sink = s
	l.mu.Unlock()
}

// Lang returns the current language
func (l *Log) Lang() Lang {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// SetLang switches the language of subsequent entries
func (l *Log) SetLang(lang Lang) {
	l.mu.Lock()
	l.lang = lang
	l.mu.Unlock()
}

// Add formats a message in the current language and appends it, evicting the oldest entry when full
func (l *Log) Add(now time.Time, level core.Level, key Key, args ...any) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		Time:  now,
		Level: level,
		Key:   key,
		Text:  Translate(l.lang, key, args...),
		Lang:  l.lang,
	}

	idx := (l.start + l.count) % len(l.entries)
	l.entries[idx] = e
	if l.count < len(l.entries) {
		l.count++
	} else {
		l.start = (l.start + 1) % len(l.entries)
	}

	if l.sink != nil {
		if err := l.sink.Write(e); err != nil {
			l.sinkErrs++
		}
	}
	return e
}

// Len returns the number of retained entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// SinkErrors returns how many journal writes failed
func (l *Log) SinkErrors() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sinkErrs
}

// Recent returns up to n newest entries, oldest first
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.count {
		n = l.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]Entry, n)
	first := l.count - n
	for i := 0; i < n; i++ {
		out[i] = l.entries[(l.start+first+i)%len(l.entries)]
	}
	return out
}

// String renders an entry as a HUD line
func (e Entry) String() string {
	return fmt.Sprintf("%s %s", e.Time.Format("15:04:05"), e.Text)
}
