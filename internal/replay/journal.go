// Package replay records resolved actions and fingerprints a battle.
package replay

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/battlecore/internal/battle"
)

// Entry is one resolved action.
type Entry struct {
	Seq    int
	Turn   int
	Kind   string
	Action string
}

// Journal is a battle.Recorder keeping every resolved action in order.
// Two battles with the same seed and layout produce the same journal.
type Journal struct {
	entries []Entry
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends a.
func (j *Journal) Record(turn int, a battle.Action) {
	j.entries = append(j.entries, Entry{
		Seq:    len(j.entries),
		Turn:   turn,
		Kind:   a.Kind().String(),
		Action: fmt.Sprint(a),
	})
}

// Entries returns the recorded entries.
func (j *Journal) Entries() []Entry { return j.entries }

// Len returns the number of recorded entries.
func (j *Journal) Len() int { return len(j.entries) }

// Digest returns the hex BLAKE2b-256 of the journal.
func (j *Journal) Digest() string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only fails for keys longer than 64 bytes
		panic(err)
	}
	for _, e := range j.entries {
		fmt.Fprintf(h, "%d|%d|%s|%s\n", e.Seq, e.Turn, e.Kind, e.Action)
	}
	return hex.EncodeToString(h.Sum(nil))
}
