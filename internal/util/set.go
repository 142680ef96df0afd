package util

import (
	"sort"
	"strings"
)

// StringSet is a set of rule/token names. It backs the initial-names
// computation and the Analyzer's left-recursion graph and SCC
// bookkeeping, where sets of grammar symbol names are unioned and walked.
type StringSet map[string]bool

func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func (s StringSet) Copy() StringSet {
	newS := NewStringSet()
	for k := range s {
		newS[k] = true
	}
	return newS
}

// Union returns a new StringSet that is the union of s and o.
func (s StringSet) Union(o StringSet) StringSet {
	newSet := NewStringSet()
	newSet.AddAll(s)
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new StringSet that contains the elements in both
// s and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	newSet := NewStringSet()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Difference returns a new StringSet that contains the elements in s but
// not in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newSet := NewStringSet()
	newSet.AddAll(s)
	for k := range o {
		newSet.Remove(k)
	}
	return newSet
}

func (s StringSet) DisjointWith(o StringSet) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s StringSet) Empty() bool {
	return s.Len() == 0
}

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) AddAll(s2 StringSet) {
	for element := range s2 {
		s.Add(element)
	}
}

// StringOrdered shows the contents of the set with items alphabetized, so
// that two sets with the same members always print identically regardless
// of map iteration order. Used for deterministic error messages and test
// fixtures.
func (s StringSet) StringOrdered() string {
	convs := s.Elements()
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

func (s StringSet) String() string {
	return s.StringOrdered()
}

// Equal returns whether two sets have the same members. Anything that isn't
// a StringSet (or *StringSet) compares unequal.
func (s StringSet) Equal(o any) bool {
	other, ok := o.(StringSet)
	if !ok {
		otherPtr, ok := o.(*StringSet)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Elements returns the members of s as a slice. No particular order is
// guaranteed.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

func StringSetOf(sl []string) StringSet {
	if sl == nil {
		return nil
	}
	s := StringSet{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}
