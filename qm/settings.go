/*
 * settings.go, part of chemassist.
 *
 *
 * Copyright 2019 Tom Mason <tommason14@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package qm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//Settings is a nested tree of calculation directives. Keys are unique per
//level and keep their insertion order, which matters for the run directive
//of structured-block decks: some target parsers assign arguments
//positionally, so alphabetical reordering produces wrong inputs. Values
//are either strings or nested *Settings.
type Settings struct {
	keys []string
	vals map[string]interface{}
}

//NewSettings returns an empty Settings tree.
func NewSettings() *Settings {
	return &Settings{vals: make(map[string]interface{})}
}

//Keys returns the keys of this level in insertion order. The returned
//slice must not be modified.
func (s *Settings) Keys() []string {
	return s.keys
}

//Len returns the number of keys on this level.
func (s *Settings) Len() int {
	return len(s.keys)
}

//Child returns the nested Settings under key, or nil if the key is absent
//or holds a scalar.
func (s *Settings) Child(key string) *Settings {
	if s == nil {
		return nil
	}
	c, _ := s.vals[key].(*Settings)
	return c
}

//Value returns the scalar under key, or "" if the key is absent or holds a
//subtree.
func (s *Settings) Value(key string) string {
	if s == nil {
		return ""
	}
	v, _ := s.vals[key].(string)
	return v
}

//Get walks the given path of keys and returns the scalar at its end, with
//false if any step is missing or the end is not a scalar.
func (s *Settings) Get(path ...string) (string, bool) {
	cur := s
	for i, k := range path {
		if cur == nil {
			return "", false
		}
		if i == len(path)-1 {
			v, ok := cur.vals[k].(string)
			return v, ok
		}
		cur = cur.Child(k)
	}
	return "", false
}

//Has reports whether the full path exists, leading to either a scalar or a
//subtree.
func (s *Settings) Has(path ...string) bool {
	cur := s
	for i, k := range path {
		if cur == nil {
			return false
		}
		if _, ok := cur.vals[k]; !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		cur = cur.Child(k)
	}
	return len(path) == 0
}

//Set places a scalar value at the end of the path, creating intermediate
//subtrees as needed. An intermediate scalar in the way is replaced by a
//subtree.
func (s *Settings) Set(value string, path ...string) {
	if len(path) == 0 {
		panic("Settings.Set needs a path")
	}
	cur := s
	for _, k := range path[:len(path)-1] {
		next := cur.Child(k)
		if next == nil {
			next = NewSettings()
			cur.put(k, next)
		}
		cur = next
	}
	cur.put(path[len(path)-1], value)
}

//put stores v under k, appending k to the key order if new.
func (s *Settings) put(k string, v interface{}) {
	if _, ok := s.vals[k]; !ok {
		s.keys = append(s.keys, k)
	}
	s.vals[k] = v
}

//Delete removes key k from this level. Removing an absent key is a no-op.
func (s *Settings) Delete(k string) {
	if _, ok := s.vals[k]; !ok {
		return
	}
	delete(s.vals, k)
	for i, key := range s.keys {
		if key == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

//Copy returns a deep copy of the tree.
func (s *Settings) Copy() *Settings {
	if s == nil {
		return nil
	}
	ret := NewSettings()
	for _, k := range s.keys {
		switch v := s.vals[k].(type) {
		case *Settings:
			ret.put(k, v.Copy())
		default:
			ret.put(k, v)
		}
	}
	return ret
}

//Merge overlays user onto the receiver level by level and returns the
//merged tree as a fresh copy. User values win; default keys the user did
//not touch survive. Neither input is modified: every job gets its own
//merged copy, there is no shared mutable template.
func (s *Settings) Merge(user *Settings) *Settings {
	ret := s.Copy()
	if user == nil {
		return ret
	}
	for _, k := range user.keys {
		uval := user.vals[k]
		uchild, uIsTree := uval.(*Settings)
		dchild := ret.Child(k)
		if uIsTree && dchild != nil {
			ret.vals[k] = dchild.Merge(uchild)
			continue
		}
		if uIsTree {
			ret.put(k, uchild.Copy())
			continue
		}
		ret.put(k, uval)
	}
	return ret
}

//UnmarshalYAML decodes a YAML mapping into Settings, preserving the order
//in which keys appear in the document. Scalars keep their source text, so
//values like .TRUE. or 1.752 survive untouched.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("Settings must be a YAML mapping, got %v", node.Kind)
	}
	if s.vals == nil {
		s.vals = make(map[string]interface{})
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch val.Kind {
		case yaml.MappingNode:
			child := NewSettings()
			if err := child.UnmarshalYAML(val); err != nil {
				return err
			}
			s.put(key, child)
		case yaml.ScalarNode:
			s.put(key, val.Value)
		default:
			return fmt.Errorf("Unsupported YAML node under key %s", key)
		}
	}
	return nil
}

//ReadSettings reads a YAML settings file into a Settings tree.
func ReadSettings(filename string) (*Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s := NewSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, NewConfigurationError(fmt.Sprintf("Malformed settings file %s: %v", filename, err))
	}
	return s, nil
}
