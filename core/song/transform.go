package song

import (
	"strconv"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/music"
)

// Transpose returns a copy of the song with every chord moved by delta
// semitones. Each {key} and {new_key} directive is transposed too, and
// chords are respelled for the key in effect on their line. Transposing
// does not need a key.
func (s *Song) Transpose(delta int, normalizeSuffix bool) *Song {
	return s.transpose(delta, normalizeSuffix, func(value string) string {
		return shiftKey(value, delta)
	})
}

// shiftKey moves a key value by delta. Values that are not keys are kept.
func shiftKey(value string, delta int) string {
	if k := music.ParseKey(value); k != nil {
		return k.Transpose(delta).Normalize().String()
	}
	return value
}

// transpose moves chords by delta and rewrites key directives and line keys
// with rekey. Chords are respelled for their line's new key, or the song's
// new key on lines before any key directive.
func (s *Song) transpose(delta int, normalizeSuffix bool, rekey func(string) string) *Song {
	songKey := music.ParseKey(rekey(s.Key()))
	return s.MapLines(func(l *Line) *Line {
		if l.Key != "" {
			l.Key = rekey(l.Key)
		}
		key := songKey
		if k := music.ParseKey(l.Key); k != nil {
			key = k
		}
		return l.MapItems(func(item Item) Item {
			switch it := item.(type) {
			case *Tag:
				if it.Name() == KeyTag || it.Name() == NewKey {
					return it.WithValue(rekey(it.Value))
				}
			case *ChordLyricsPair:
				return it.Transpose(delta, key, normalizeSuffix)
			}
			return item
		})
	})
}

// TransposeUp transposes the song up one semitone.
func (s *Song) TransposeUp(normalizeSuffix bool) *Song {
	return s.Transpose(1, normalizeSuffix)
}

// TransposeDown transposes the song down one semitone.
func (s *Song) TransposeDown(normalizeSuffix bool) *Song {
	return s.Transpose(-1, normalizeSuffix)
}

// GetTransposeDistance returns the shortest signed number of semitones from
// the song key to newKey.
func (s *Song) GetTransposeDistance(newKey string) (int, error) {
	current := s.key()
	if current == nil {
		return 0, errors.NewNoKeySet("change song key")
	}
	target, err := music.ParseKeyOrFail(newKey)
	if err != nil {
		return 0, err
	}
	return music.SignedDistance(current, target), nil
}

// ChangeKey returns a copy of the song in newKey. Chords are transposed by
// the distance between the keys and respelled for the key in effect on
// their line. The song key becomes newKey and later key changes move by the
// same distance. It fails with ErrNoKeySet when the song key is unknown.
func (s *Song) ChangeKey(newKey string) (*Song, error) {
	delta, err := s.GetTransposeDistance(newKey)
	if err != nil {
		return nil, err
	}
	from := s.Key()
	target := music.ParseKey(newKey).String()
	return s.transpose(delta, false, func(value string) string {
		if value == from {
			return target
		}
		return shiftKey(value, delta)
	}), nil
}

// SetKey returns a copy of the song with the key set. It only rewrites the
// {key} directive and metadata; chords are left alone. An empty key removes
// the directive.
func (s *Song) SetKey(key string) *Song {
	return s.ChangeMetadata(KeyTag, key)
}

// SetCapo returns a copy of the song with the capo set. Zero removes the
// {capo} directive.
func (s *Song) SetCapo(capo int) *Song {
	if capo == 0 {
		return s.RemoveMetadata(Capo)
	}
	return s.ChangeMetadata(Capo, strconv.Itoa(capo))
}

// ChangeMetadata returns a copy of the song with every directive called
// name set to value. Without a matching directive a new one is inserted as
// the first line. An empty value removes the directive, as RemoveMetadata.
func (s *Song) ChangeMetadata(name, value string) *Song {
	if value == "" {
		return s.RemoveMetadata(name)
	}
	name = NewTag(name, "").Name()
	found := false
	c := s.MapItems(func(item Item) Item {
		if t, ok := item.(*Tag); ok && t.Name() == name {
			found = true
			return t.WithValue(value)
		}
		return item
	})
	if !found {
		c.Lines = append([]*Line{NewLine(None, NewTag(name, value))}, c.Lines...)
		c.SyncMetadata()
	}
	return c
}

// RemoveMetadata returns a copy of the song without directives called name.
// Lines left empty by the removal are dropped.
func (s *Song) RemoveMetadata(name string) *Song {
	name = NewTag(name, "").Name()
	return s.MapLines(func(l *Line) *Line {
		if !l.HasTag(name) {
			return l
		}
		mapped := l.MapItems(func(item Item) Item {
			if t, ok := item.(*Tag); ok && t.Name() == name {
				return nil
			}
			return item
		})
		if mapped.IsEmpty() {
			return nil
		}
		return mapped
	})
}

// MapItems returns a copy of the song with every item replaced by fn's
// result, in document order. Returning nil removes the item. fn receives
// copies, so changing them does not affect s.
func (s *Song) MapItems(fn func(Item) Item) *Song {
	c := &Song{
		Lines:    make([]*Line, len(s.Lines)),
		Warnings: append([]Warning(nil), s.Warnings...),
	}
	for i, l := range s.Lines {
		c.Lines[i] = l.MapItems(fn)
	}
	c.SyncMetadata()
	return c
}

// MapLines returns a copy of the song with every line replaced by fn's
// result, in document order. Returning nil removes the line. fn receives
// copies, so changing them does not affect s.
func (s *Song) MapLines(fn func(*Line) *Line) *Song {
	c := &Song{Warnings: append([]Warning(nil), s.Warnings...)}
	for _, l := range s.Lines {
		if mapped := fn(l.Clone()); mapped != nil {
			c.Lines = append(c.Lines, mapped)
		}
	}
	c.SyncMetadata()
	return c
}
