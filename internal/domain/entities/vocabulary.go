// Package entities contains domain entities used across the application.
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VocabularyEntry is a single German word together with its Vietnamese translation.
type VocabularyEntry struct {
	German     string `json:"german"`     // German term, used as the quiz prompt
	Vietnamese string `json:"vietnamese"` // Vietnamese translation, used as the answer
}

// Topic groups vocabulary entries under a name such as "animals".
type Topic struct {
	Name    string
	Entries []VocabularyEntry
}

// Vocabulary is the whole vocabulary document. Topics keep the order
// in which they appear in the source file.
type Vocabulary struct {
	Topics []Topic
}

// Topic looks up a topic by its exact name.
func (v *Vocabulary) Topic(name string) (Topic, bool) {
	for _, t := range v.Topics {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

// TopicNames returns topic names in document order.
func (v *Vocabulary) TopicNames() []string {
	names := make([]string, 0, len(v.Topics))
	for _, t := range v.Topics {
		names = append(names, t.Name)
	}
	return names
}

// Translations returns every Vietnamese term of every topic, duplicates included.
func (v *Vocabulary) Translations() []string {
	var out []string
	for _, t := range v.Topics {
		for _, e := range t.Entries {
			out = append(out, e.Vietnamese)
		}
	}
	return out
}

// UnmarshalJSON decodes an object of the form {"topic": [entries...]}
// without losing the order of its keys.
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("vocabulary: expected object, got %v", tok)
	}

	topics := make([]Topic, 0)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("vocabulary: unexpected key %v", tok)
		}

		var entries []VocabularyEntry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("vocabulary: topic %q: %w", name, err)
		}
		topics = append(topics, Topic{Name: name, Entries: entries})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	v.Topics = topics
	return nil
}

// GrammarLesson is an opaque lesson record. Its fields are rendered as they are.
type GrammarLesson map[string]any
